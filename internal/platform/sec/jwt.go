// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via narrow interfaces (e.g. [middleware.TokenVerifier]).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an auth token measured from issuance.
const DefaultTokenTTL = 24 * time.Hour

var (
	// ErrTokenExpired is returned by [TokenService.Verify] when the signature is
	// valid but the token is at or past its expiry instant.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenMalformed is returned by [TokenService.Verify] for tokens that cannot
	// be parsed, carry a bad signature, or lack the required claims.
	ErrTokenMalformed = errors.New("sec: token malformed")
)

// AuthClaims is the authenticated principal resolved from a bearer token.
//
// The raw token string travels with the claims so that downstream handlers
// (logout) can revoke exactly the credential that authenticated the request.
type AuthClaims struct {
	UserID    string
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService handles generation and verification of HS256 auth tokens.
//
// # Statelessness
//
// Tokens are self-contained: verification needs only the shared secret and
// the clock. Early invalidation is handled by a separate revocation list.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a [TokenService].
type Option func(*TokenService)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		service.now = now
	}
}

// WithTTL overrides [DefaultTokenTTL].
func WithTTL(ttl time.Duration) Option {
	return func(service *TokenService) {
		if ttl > 0 {
			service.ttl = ttl
		}
	}
}

// NewTokenService creates a new TokenService signing with the given secret.
func NewTokenService(secret string, options ...Option) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}

	service := &TokenService{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, option := range options {
		option(service)
	}

	return service, nil
}

// Issue creates a signed token for userID valid for the configured TTL.
func (service *TokenService) Issue(userID string) (string, error) {
	currentTime := service.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and lifetime of a token string.
//
// It returns the resolved claims, [ErrTokenMalformed] or [ErrTokenExpired].
// The signature is checked before the clock, and a token presented exactly at
// its expiry instant is already expired. Segments must be canonical base64url:
// a token has exactly one accepted spelling, which the revocation list relies on.
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	claims := &jwt.RegisteredClaims{}

	// Claims validation is skipped here so that expiry is judged below with
	// the injected clock and an inclusive boundary.
	token, err := jwt.ParseWithClaims(tokenString, claims, service.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.Subject == "" || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, ErrTokenMalformed
	}

	if !service.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	return &AuthClaims{
		UserID:    claims.Subject,
		Token:     tokenString,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// ExpiryOf reads the exp claim of a token without checking its signature.
//
// Only for bookkeeping on tokens that already passed [TokenService.Verify].
func ExpiryOf(tokenString string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// keyFunc returns the HMAC secret after confirming the signing family.
func (service *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
	}
	return service.secret, nil
}
