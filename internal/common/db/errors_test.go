package db

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/carsle-auth/internal/common/db/migrations"
)

var errNotFound = errors.New("not found")

func TestUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	name, ok := UniqueViolation(fmt.Errorf("insert: %w", pgErr))
	if !ok || name != "users_email_key" {
		t.Errorf("expected users_email_key violation, got %q %v", name, ok)
	}

	if _, ok := UniqueViolation(&pgconn.PgError{Code: "23503"}); ok {
		t.Error("foreign key violation reported as unique violation")
	}
	if _, ok := UniqueViolation(errors.New("boom")); ok {
		t.Error("plain error reported as unique violation")
	}
}

func TestHandleQueryError(t *testing.T) {
	start := time.Now()

	if err := HandleQueryError(nil, errNotFound, "find user", "users", start); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := HandleQueryError(pgx.ErrNoRows, errNotFound, "find user", "users", start); !errors.Is(err, errNotFound) {
		t.Errorf("expected not found sentinel, got %v", err)
	}

	cause := errors.New("connection reset")
	err := HandleQueryError(cause, errNotFound, "find user", "users", start)
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	if err.Error() != "failed to find user: connection reset" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	data, err := migrations.FS.ReadFile("00001_create_users.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if len(data) == 0 {
		t.Error("migration file is empty")
	}
}
