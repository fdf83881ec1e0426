// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/eachday/internal/platform/apperr"
	"github.com/taibuivan/eachday/internal/platform/ctxutil"
	"github.com/taibuivan/eachday/internal/platform/dberr"
	"github.com/taibuivan/eachday/internal/platform/sec"
	"github.com/taibuivan/eachday/internal/platform/validate"
	"github.com/taibuivan/eachday/pkg/calendar"
	"github.com/taibuivan/eachday/pkg/textnorm"
	"github.com/taibuivan/eachday/pkg/uuid"
)

// # Sentinel Errors

var (
	// ErrUserExists is returned when an email is already registered.
	ErrUserExists = apperr.Conflict(MsgUserExists)

	// ErrUnknownUser is returned by Login for an unregistered email.
	ErrUnknownUser = apperr.NotFound(MsgUnknownUser)

	// ErrInvalidLogin is returned by Login for a wrong password.
	ErrInvalidLogin = apperr.Unauthorized(MsgInvalidLogin)
)

// # Contracts & Types

// TokenIssuer mints signed auth tokens for a user.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// Service implements user authentication use cases.
type Service struct {
	userRepository       UserRepository
	revocationRepository RevocationRepository
	tokens               TokenIssuer
	hasher               PasswordHasher
	now                  func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	revocationRepo RevocationRepository,
	tokens TokenIssuer,
	hasher PasswordHasher,
) *Service {
	return &Service{
		userRepository:       userRepo,
		revocationRepository: revocationRepo,
		tokens:               tokens,
		hasher:               hasher,
		now:                  time.Now,
	}
}

// WithClock replaces the time source used for join dates. Intended for tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// # Registration Flow

/*
Register validates, hashes, and persists a brand new user account, then issues
its first auth token.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - string: Signed auth token
  - err: Validation, ErrUserExists, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (string, error) {
	email := strings.TrimSpace(input.Email)
	name := textnorm.Line(input.Name)

	// All violations surface together.
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Email(FieldEmail, email).
		MaxLen(FieldEmail, email, MaxEmailLength).
		Required(FieldPassword, input.Password).
		Custom(FieldPassword, len(input.Password) > MaxPasswordBytes, passwordTooLong).
		Required(FieldName, name).
		MaxLen(FieldName, name, MaxNameLength)
	if err := validator.Err(); err != nil {
		return "", err
	}

	// Early duplicate check; the unique index remains the final word.
	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return "", ErrUserExists
	} else if !errors.Is(err, dberr.ErrNoRows) {
		return "", fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         name,
		JoinedOn:     calendar.Of(service.now().UTC()),
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("auth_service_register_failed: %w", err)
	}

	token, err := service.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("auth_service_issue_token_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_registered", slog.String("user_id", user.ID))

	return token, nil
}

// # Authentication Flow

/*
Login verifies credentials and issues a fresh auth token.

Unknown emails and wrong passwords are reported differently.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - string: Signed auth token
  - err: Validation, ErrUnknownUser, ErrInvalidLogin, or storage errors
*/
func (service *Service) Login(context context.Context, input LoginInput) (string, error) {
	email := strings.TrimSpace(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return "", err
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if errors.Is(err, dberr.ErrNoRows) {
			return "", ErrUnknownUser
		}
		return "", fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// bcrypt comparison is constant-time
	if !service.hasher.Check(input.Password, user.PasswordHash) {
		return "", ErrInvalidLogin
	}

	token, err := service.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("auth_service_issue_token_failed: %w", err)
	}

	return token, nil
}

/*
Logout revokes the token that authenticated the current request.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (set by the authentication middleware)

Returns:
  - err: Storage errors
*/
func (service *Service) Logout(context context.Context, claims *sec.AuthClaims) error {
	if err := service.revocationRepository.Revoke(context, claims.Token, claims.ExpiresAt); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_logged_out", slog.String("user_id", claims.UserID))

	return nil
}

// passwordTooLong is the field message for passwords bcrypt cannot hash.
var passwordTooLong = fmt.Sprintf("Maximum %d bytes", MaxPasswordBytes)
