// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package authtest provides in-memory implementations of the auth repositories
// for use in tests.
package authtest

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/eachday/internal/platform/dberr"
	"github.com/taibuivan/eachday/internal/users/auth"
)

// UserRepository is a map-backed [auth.UserRepository] with a unique email index.
type UserRepository struct {
	mu    sync.Mutex
	users map[string]auth.User

	// Err, when set, is returned by every method.
	Err error
}

// NewUserRepository returns an empty repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]auth.User)}
}

// FindByID implements [auth.UserRepository].
func (repository *UserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return nil, repository.Err
	}

	user, ok := repository.users[id]
	if !ok {
		return nil, dberr.ErrNoRows
	}
	return &user, nil
}

// FindByEmail implements [auth.UserRepository].
func (repository *UserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return nil, repository.Err
	}

	for _, user := range repository.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, dberr.ErrNoRows
}

// Create implements [auth.UserRepository].
func (repository *UserRepository) Create(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return repository.Err
	}

	if repository.emailTaken(user.Email, user.ID) {
		return auth.ErrUserExists
	}
	repository.users[user.ID] = *user
	return nil
}

// Update implements [auth.UserRepository].
func (repository *UserRepository) Update(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return repository.Err
	}

	stored, ok := repository.users[user.ID]
	if !ok {
		return dberr.ErrNoRows
	}
	if repository.emailTaken(user.Email, user.ID) {
		return auth.ErrUserExists
	}

	stored.Email = user.Email
	stored.Name = user.Name
	stored.PasswordHash = user.PasswordHash
	repository.users[user.ID] = stored
	return nil
}

// Put stores user as-is, bypassing validation. Used to seed fixtures.
func (repository *UserRepository) Put(user auth.User) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.users[user.ID] = user
}

// Len returns the number of stored users.
func (repository *UserRepository) Len() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.users)
}

func (repository *UserRepository) emailTaken(email, exceptID string) bool {
	for id, other := range repository.users {
		if id != exceptID && other.Email == email {
			return true
		}
	}
	return false
}

// RevocationRepository is a map-backed [auth.RevocationRepository].
type RevocationRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time

	// Err, when set, is returned by every method.
	Err error

	// Lookups counts IsRevoked calls.
	Lookups int
}

// NewRevocationRepository returns an empty list.
func NewRevocationRepository() *RevocationRepository {
	return &RevocationRepository{revoked: make(map[string]time.Time)}
}

// Revoke implements [auth.RevocationRepository].
func (repository *RevocationRepository) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return repository.Err
	}
	if _, exists := repository.revoked[token]; !exists {
		repository.revoked[token] = expiresAt
	}
	return nil
}

// IsRevoked implements [auth.RevocationRepository].
func (repository *RevocationRepository) IsRevoked(_ context.Context, token string) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.Lookups++
	if repository.Err != nil {
		return false, repository.Err
	}
	_, revoked := repository.revoked[token]
	return revoked, nil
}

// PurgeExpired implements [auth.RevocationRepository].
func (repository *RevocationRepository) PurgeExpired(_ context.Context, before time.Time) (int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return 0, repository.Err
	}

	var removed int64
	for token, expiresAt := range repository.revoked {
		if expiresAt.Before(before) {
			delete(repository.revoked, token)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of revoked tokens.
func (repository *RevocationRepository) Len() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.revoked)
}
