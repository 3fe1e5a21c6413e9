package http_test

import (
	"context"
	"strings"
	"sync"

	userdomain "github.com/AlibekovAA/carsle-auth/internal/user/domain"
	userrepo "github.com/AlibekovAA/carsle-auth/internal/user/repository"
)

// memoryRepo mirrors the unique constraints of the users table.
type memoryRepo struct {
	mu    sync.Mutex
	users map[userdomain.ID]userdomain.User

	createErr error
	findErr   error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[userdomain.ID]userdomain.User)}
}

func (m *memoryRepo) Create(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return userdomain.User{}, m.createErr
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return userdomain.User{}, userrepo.ErrEmailAlreadyExists
		}
		if u.Username == user.Username {
			return userdomain.User{}, userrepo.ErrUsernameAlreadyExists
		}
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	return m.find(func(u userdomain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (m *memoryRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	return m.find(func(u userdomain.User) bool { return u.Username == username })
}

func (m *memoryRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	return m.find(func(u userdomain.User) bool { return u.ID == id })
}

func (m *memoryRepo) UpdateEmail(ctx context.Context, id userdomain.ID, email string) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	for otherID, u := range m.users {
		if otherID != id && strings.EqualFold(u.Email, email) {
			return userdomain.User{}, userrepo.ErrEmailAlreadyExists
		}
	}
	user.Email = email
	m.users[id] = user
	return user, nil
}

func (m *memoryRepo) Delete(ctx context.Context, id userdomain.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return userrepo.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryRepo) find(match func(userdomain.User) bool) (userdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return userdomain.User{}, m.findErr
	}
	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}
