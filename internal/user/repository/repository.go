package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/carsle-auth/internal/common/db"
	"github.com/AlibekovAA/carsle-auth/internal/user/domain"
)

const usersTable = "users"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	UpdateEmail(ctx context.Context, id domain.ID, email string) (domain.User, error)
	Delete(ctx context.Context, id domain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const userColumns = `id, full_name, username, email, password_hash, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.FullName, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	return user, err
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (id, full_name, username, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		string(user.ID),
		user.FullName,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)

	created, err := scanUser(row)
	if constraint, ok := db.UniqueViolation(err); ok {
		db.MeasureQueryDuration("create user", usersTable, start)
		return domain.User{}, uniqueViolationError(constraint)
	}
	if err := db.HandleQueryError(err, ErrUserNotFound, "create user", usersTable, start); err != nil {
		return domain.User{}, err
	}
	return created, nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`,
		email,
	)

	user, err := scanUser(row)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by email", usersTable, start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	)

	user, err := scanUser(row)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by username", usersTable, start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		string(id),
	)

	user, err := scanUser(row)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by id", usersTable, start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) UpdateEmail(ctx context.Context, id domain.ID, email string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`UPDATE users SET email = $2 WHERE id = $1 RETURNING `+userColumns,
		string(id),
		email,
	)

	user, err := scanUser(row)
	if constraint, ok := db.UniqueViolation(err); ok {
		db.MeasureQueryDuration("update user email", usersTable, start)
		return domain.User{}, uniqueViolationError(constraint)
	}
	if err := db.HandleQueryError(err, ErrUserNotFound, "update user email", usersTable, start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, string(id))
	if err := db.HandleExecError(err, "delete user", usersTable, start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func uniqueViolationError(constraint string) error {
	if constraint == "users_username_key" {
		return ErrUsernameAlreadyExists
	}
	return ErrEmailAlreadyExists
}
