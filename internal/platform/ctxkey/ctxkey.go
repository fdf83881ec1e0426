// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// The unexported key type keeps these values from colliding with keys set by
// chi or any other package sharing the request context.
package ctxkey

type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser holds the authenticated principal ([sec.AuthClaims]).
	KeyUser key = "auth_principal"

	// KeyLogger holds the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
