// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/eachday/internal/platform/apperr"
	"github.com/taibuivan/eachday/internal/platform/ctxutil"
	"github.com/taibuivan/eachday/internal/platform/dberr"
	"github.com/taibuivan/eachday/internal/platform/validate"
	"github.com/taibuivan/eachday/internal/users/auth"
	"github.com/taibuivan/eachday/pkg/textnorm"
	"github.com/taibuivan/eachday/pkg/uuid"
)

// # Sentinel Errors

var (
	// ErrInvalidUser is returned when the authenticated user no longer exists.
	ErrInvalidUser = apperr.NotFound(auth.MsgInvalidUser)

	// ErrPasswordRequired is returned when an edit omits the current password.
	ErrPasswordRequired = apperr.Unauthorized(MsgPasswordRequired)

	// ErrInvalidPassword is returned when the current password does not match.
	ErrInvalidPassword = apperr.Unauthorized(MsgInvalidPassword)
)

// # Service Layer

// Service orchestrates reading and editing the authenticated user's account.
type Service struct {
	userRepository auth.UserRepository
	tokens         auth.TokenIssuer
	hasher         auth.PasswordHasher
}

// NewService constructs a new [Service] with its dependencies.
func NewService(userRepo auth.UserRepository, tokens auth.TokenIssuer, hasher auth.PasswordHasher) *Service {
	return &Service{
		userRepository: userRepo,
		tokens:         tokens,
		hasher:         hasher,
	}
}

// # Profile Management

/*
GetProfile retrieves the account of the authenticated user.

Parameters:
  - context: context.Context
  - userID: string (token subject)

Returns:
  - *auth.User: The hydrated user profile
  - error: ErrInvalidUser or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	if !uuid.Valid(userID) {
		return nil, ErrInvalidUser
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNoRows) {
			return nil, ErrInvalidUser
		}
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}

	return user, nil
}

/*
UpdateProfile applies a confirmed edit to the user's account.

Description: Checks the current password, validates the provided fields, applies
the non-empty ones on top of the stored account, and persists the result. The
response carries a freshly issued auth token.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateInput

Returns:
  - *Profile: The updated account plus its new token
  - error: ErrInvalidUser, ErrPasswordRequired, ErrInvalidPassword,
    validation errors, auth.ErrUserExists or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateInput) (*Profile, error) {
	user, err := service.GetProfile(context, userID)
	if err != nil {
		return nil, err
	}

	// Confirm identity before looking at the rest of the payload
	if input.Password == nil {
		return nil, ErrPasswordRequired
	}
	if !service.hasher.Check(*input.Password, user.PasswordHash) {
		return nil, ErrInvalidPassword
	}

	email := strings.TrimSpace(input.Email)
	name := textnorm.Line(input.Name)

	validator := &validate.Validator{}
	validator.Email(auth.FieldEmail, email).
		MaxLen(auth.FieldEmail, email, auth.MaxEmailLength).
		MaxLen(auth.FieldName, name, auth.MaxNameLength).
		Custom(auth.FieldNewPassword, len(input.NewPassword) > auth.MaxPasswordBytes,
			fmt.Sprintf("Maximum %d bytes", auth.MaxPasswordBytes))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.NewPassword != "" {
		hashedPassword, err := service.hasher.Hash(input.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("account_service_hash_failed: %w", err)
		}
		user.PasswordHash = hashedPassword
	}
	if email != "" {
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}

	if err := service.userRepository.Update(context, user); err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			return nil, auth.ErrUserExists
		case errors.Is(err, dberr.ErrNoRows):
			return nil, ErrInvalidUser
		}
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	token, err := service.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("account_service_issue_token_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_profile_updated",
		slog.String("user_id", user.ID),
		slog.Bool("password_changed", input.NewPassword != ""),
	)

	return &Profile{User: *user, AuthToken: token}, nil
}
