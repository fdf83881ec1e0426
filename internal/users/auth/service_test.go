// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/eachday/internal/platform/apperr"
	"github.com/taibuivan/eachday/internal/platform/sec"
	"github.com/taibuivan/eachday/internal/platform/validate"
	"github.com/taibuivan/eachday/internal/users/auth"
	"github.com/taibuivan/eachday/internal/users/auth/authtest"
)

var fixedNow = time.Date(2017, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	service     *auth.Service
	users       *authtest.UserRepository
	revocations *authtest.RevocationRepository
	tokens      *sec.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret", sec.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	users := authtest.NewUserRepository()
	revocations := authtest.NewRevocationRepository()
	service := auth.NewService(users, revocations, tokens, sec.NewPasswordHasher(bcrypt.MinCost)).
		WithClock(func() time.Time { return fixedNow })

	return &fixture{service: service, users: users, revocations: revocations, tokens: tokens}
}

func (f *fixture) register(t *testing.T, email, password, name string) string {
	t.Helper()
	token, err := f.service.Register(context.Background(), auth.RegisterInput{Email: email, Password: password, Name: name})
	require.NoError(t, err)
	return token
}

/*
TestService_Register covers the happy path: token subject and stored account.
*/
func TestService_Register(t *testing.T) {
	f := newFixture(t)

	token := f.register(t, "foo@bar.com", "123456", "joe")

	claims, err := f.tokens.Verify(token)
	require.NoError(t, err)

	user, err := f.users.FindByID(context.Background(), claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "foo@bar.com", user.Email)
	assert.Equal(t, "joe", user.Name)
	assert.Equal(t, "2017-01-01", user.JoinedOn.String())
	assert.NotEqual(t, "123456", user.PasswordHash)
}

func TestService_Register_NormalizesName(t *testing.T) {
	f := newFixture(t)

	token := f.register(t, " foo@bar.com ", "123456", "  José   Knuth ")
	claims, err := f.tokens.Verify(token)
	require.NoError(t, err)

	user, err := f.users.FindByID(context.Background(), claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "foo@bar.com", user.Email)
	assert.Equal(t, "José Knuth", user.Name)
}

func TestService_Register_Validation(t *testing.T) {
	tests := []struct {
		name       string
		input      auth.RegisterInput
		wantFields map[string][]string
	}{
		{
			name:  "missing_password_and_name",
			input: auth.RegisterInput{Email: "foo@bar.com"},
			wantFields: map[string][]string{
				"password": {validate.MsgRequired},
				"name":     {validate.MsgRequired},
			},
		},
		{
			name:  "everything_missing",
			input: auth.RegisterInput{},
			wantFields: map[string][]string{
				"email":    {validate.MsgRequired},
				"password": {validate.MsgRequired},
				"name":     {validate.MsgRequired},
			},
		},
		{
			name:       "bad_email",
			input:      auth.RegisterInput{Email: "not-an-email", Password: "123456", Name: "joe"},
			wantFields: map[string][]string{"email": {validate.MsgInvalidEmail}},
		},
		{
			name:       "password_beyond_bcrypt_limit",
			input:      auth.RegisterInput{Email: "foo@bar.com", Password: strings.Repeat("x", 73), Name: "joe"},
			wantFields: map[string][]string{"password": {"Maximum 72 bytes"}},
		},
		{
			name:       "blank_name",
			input:      auth.RegisterInput{Email: "foo@bar.com", Password: "123456", Name: " \t "},
			wantFields: map[string][]string{"name": {validate.MsgRequired}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.service.Register(context.Background(), tt.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 400, appErr.HTTPStatus)
			assert.Equal(t, tt.wantFields, appErr.Fields)
			assert.Zero(t, f.users.Len())
		})
	}
}

func TestService_Register_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.register(t, "foo@bar.com", "test", "joe")

	_, err := f.service.Register(context.Background(), auth.RegisterInput{Email: "foo@bar.com", Password: "123456", Name: "moe"})

	assert.ErrorIs(t, err, auth.ErrUserExists)
	assert.EqualError(t, err, "User already exists.")
	assert.Equal(t, 1, f.users.Len())
}

func TestService_Login(t *testing.T) {
	f := newFixture(t)
	f.register(t, "joe@gmail.com", "123456", "joe")

	tests := []struct {
		name    string
		input   auth.LoginInput
		wantErr error
	}{
		{"valid", auth.LoginInput{Email: "joe@gmail.com", Password: "123456"}, nil},
		{"wrong_password", auth.LoginInput{Email: "joe@gmail.com", Password: "invalid password"}, auth.ErrInvalidLogin},
		{"unknown_email", auth.LoginInput{Email: "moe@gmail.com", Password: "123456"}, auth.ErrUnknownUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := f.service.Login(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			claims, err := f.tokens.Verify(token)
			require.NoError(t, err)
			assert.NotEmpty(t, claims.UserID)
		})
	}
}

func TestService_Login_MissingFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Login(context.Background(), auth.LoginInput{})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, []string{"email", "password"}, appErr.FieldNames())
}

func TestService_Login_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.users.Err = errors.New("connection reset")

	_, err := f.service.Login(context.Background(), auth.LoginInput{Email: "joe@gmail.com", Password: "x"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrUnknownUser)
}

/*
TestService_Logout ensures logout revokes exactly the presented token and is idempotent.
*/
func TestService_Logout(t *testing.T) {
	f := newFixture(t)
	token := f.register(t, "foo@bar.com", "123456", "joe")

	claims, err := f.tokens.Verify(token)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), claims))
	require.NoError(t, f.service.Logout(context.Background(), claims))

	revoked, err := f.revocations.IsRevoked(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 1, f.revocations.Len())
}
