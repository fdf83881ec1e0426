// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/eachday/internal/platform/sec"
)

// frozenClock is a manually advanced time source.
type frozenClock struct {
	current time.Time
}

func (clock *frozenClock) Now() time.Time { return clock.current }

func (clock *frozenClock) Advance(d time.Duration) { clock.current = clock.current.Add(d) }

func newService(t *testing.T, clock *frozenClock) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("super-secret", sec.WithClock(clock.Now))
	require.NoError(t, err)
	return service
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("")
	assert.Error(t, err)
}

/*
TestTokenService_IssueVerify checks that a fresh token resolves to its subject.
*/
func TestTokenService_IssueVerify(t *testing.T) {
	clock := &frozenClock{current: time.Date(2017, 1, 1, 12, 0, 0, 0, time.UTC)}
	service := newService(t, clock)

	token, err := service.Issue("user-123")
	require.NoError(t, err)

	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, token, claims.Token)
	assert.True(t, clock.current.Equal(claims.IssuedAt))
	assert.True(t, clock.current.Add(24*time.Hour).Equal(claims.ExpiresAt))
}

/*
TestTokenService_Expiry walks the clock across the 24h boundary.
*/
func TestTokenService_Expiry(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		wantErr error
	}{
		{"one_second_before_expiry", 24*time.Hour - time.Second, nil},
		{"exactly_at_expiry", 24 * time.Hour, sec.ErrTokenExpired},
		{"one_second_after_expiry", 24*time.Hour + time.Second, sec.ErrTokenExpired},
		{"a_week_later", 7 * 24 * time.Hour, sec.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &frozenClock{current: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)}
			service := newService(t, clock)

			token, err := service.Issue("u1")
			require.NoError(t, err)

			clock.Advance(tt.advance)
			claims, err := service.Verify(token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "u1", claims.UserID)
			}
		})
	}
}

/*
TestTokenService_Malformed covers every path that must report a malformed token.
*/
func TestTokenService_Malformed(t *testing.T) {
	clock := &frozenClock{current: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)}
	service := newService(t, clock)

	valid, err := service.Issue("u1")
	require.NoError(t, err)

	other, err := sec.NewTokenService("other-secret", sec.WithClock(clock.Now))
	require.NoError(t, err)
	foreign, err := other.Issue("u1")
	require.NoError(t, err)

	// Flip a byte in the middle of the payload segment.
	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	middle := len(payload) / 2
	if payload[middle] == 'A' {
		payload[middle] = 'B'
	} else {
		payload[middle] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	noSubject := signRaw(t, jwt.SigningMethodHS256, "super-secret", jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(clock.current),
		ExpiresAt: jwt.NewNumericDate(clock.current.Add(time.Hour)),
	})
	noExpiry := signRaw(t, jwt.SigningMethodHS256, "super-secret", jwt.RegisteredClaims{
		Subject:  "u1",
		IssuedAt: jwt.NewNumericDate(clock.current),
	})
	wrongAlg := signRaw(t, jwt.SigningMethodHS512, "super-secret", jwt.RegisteredClaims{
		Subject:   "u1",
		IssuedAt:  jwt.NewNumericDate(clock.current),
		ExpiresAt: jwt.NewNumericDate(clock.current.Add(time.Hour)),
	})

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not_an_auth_token ;)"},
		{"empty", ""},
		{"three_dots", "a.b.c"},
		{"tampered_payload", tampered},
		{"foreign_secret", foreign},
		{"missing_subject", noSubject},
		{"missing_expiry", noExpiry},
		{"unexpected_algorithm", wrongAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.Verify(tt.token)
			assert.ErrorIs(t, err, sec.ErrTokenMalformed)
			assert.Nil(t, claims)
		})
	}
}

/*
TestTokenService_ExpiredForgeryIsMalformed ensures the signature is judged before the clock.
*/
func TestTokenService_ExpiredForgeryIsMalformed(t *testing.T) {
	clock := &frozenClock{current: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)}
	service := newService(t, clock)

	forged := signRaw(t, jwt.SigningMethodHS256, "attacker", jwt.RegisteredClaims{
		Subject:   "u1",
		IssuedAt:  jwt.NewNumericDate(clock.current.Add(-48 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(clock.current.Add(-24 * time.Hour)),
	})

	_, err := service.Verify(forged)
	assert.ErrorIs(t, err, sec.ErrTokenMalformed)
}

/*
TestTokenService_NonCanonicalSignature flips the unused trailing bits of the
signature. The decoded bytes are unchanged, yet the token must be rejected.
*/
func TestTokenService_NonCanonicalSignature(t *testing.T) {
	clock := &frozenClock{current: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)}
	service := newService(t, clock)

	token, err := service.Issue("u1")
	require.NoError(t, err)

	for _, bit := range []uint{0, 1} {
		altered := flipTrailingBit(t, token, bit)
		require.NotEqual(t, token, altered)

		claims, err := service.Verify(altered)
		assert.ErrorIs(t, err, sec.ErrTokenMalformed, "bit %d", bit)
		assert.Nil(t, claims)
	}
}

func TestTokenService_WithTTL(t *testing.T) {
	clock := &frozenClock{current: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)}
	service, err := sec.NewTokenService("s", sec.WithClock(clock.Now), sec.WithTTL(time.Hour))
	require.NoError(t, err)

	token, err := service.Issue("u1")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

func TestExpiryOf(t *testing.T) {
	clock := &frozenClock{current: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)}
	service := newService(t, clock)

	token, err := service.Issue("u1")
	require.NoError(t, err)

	expiresAt, ok := sec.ExpiryOf(token)
	require.True(t, ok)
	assert.True(t, clock.current.Add(sec.DefaultTokenTTL).Equal(expiresAt))

	_, ok = sec.ExpiryOf("not_an_auth_token")
	assert.False(t, ok)

	noExpiry := signRaw(t, jwt.SigningMethodHS256, "super-secret", jwt.RegisteredClaims{Subject: "u1"})
	_, ok = sec.ExpiryOf(noExpiry)
	assert.False(t, ok)
}

func signRaw(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// flipTrailingBit toggles one low-order bit of the last signature character.
func flipTrailingBit(t *testing.T, token string, bit uint) string {
	t.Helper()
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	last := token[len(token)-1]
	index := strings.IndexByte(alphabet, last)
	require.GreaterOrEqual(t, index, 0)

	return token[:len(token)-1] + string(alphabet[index^(1<<bit)])
}
