// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the EachDay API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, Authentication, Panic Recovery, and CORS.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/eachday/internal/platform/apperr"
	"github.com/taibuivan/eachday/internal/platform/constants"
	"github.com/taibuivan/eachday/internal/platform/ctxutil"
	"github.com/taibuivan/eachday/internal/platform/respond"
	"github.com/taibuivan/eachday/internal/platform/sec"
)

// Client-facing messages of the authentication gate.
const (
	MsgMissingToken = "Please provide an auth token"
	MsgInvalidToken = "Invalid token. Please log in again."
	MsgExpiredToken = "Signature expired. Please log in again."
	MsgRevokedToken = "Token blacklisted. Please log in again."
)

// TokenVerifier decodes a raw token into its claims.
//
// It must return [sec.ErrTokenExpired] or [sec.ErrTokenMalformed] on failure.
type TokenVerifier interface {
	Verify(token string) (*sec.AuthClaims, error)
}

// RevocationChecker reports whether a token has been explicitly logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Authenticate guards protected routes.
//
// # Flow
//  1. Require an 'Authorization: Bearer <token>' header.
//  2. Verify signature and structure, then expiry, via [TokenVerifier].
//  3. Reject tokens present on the revocation list.
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// Each step answers 401 with its own message; a revocation lookup failure is a 500.
func Authenticate(verifier TokenVerifier, revocations RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Presence ───────────────────────────────────────────────────
			token, ok := bearerToken(request.Header.Get(constants.HeaderAuthorization))
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized(MsgMissingToken))
				return
			}

			// ── 2. Signature & Expiry ─────────────────────────────────────────
			claims, err := verifier.Verify(token)
			switch {
			case errors.Is(err, sec.ErrTokenExpired):
				respond.Error(writer, request, apperr.Unauthorized(MsgExpiredToken))
				return
			case err != nil:
				respond.Error(writer, request, apperr.Unauthorized(MsgInvalidToken))
				return
			}

			// ── 3. Revocation ─────────────────────────────────────────────────
			revoked, err := revocations.IsRevoked(request.Context(), token)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}
			if revoked {
				respond.Error(writer, request, apperr.Unauthorized(MsgRevokedToken))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", claims.UserID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credential from an Authorization header value.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	return token, true
}
