// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/eachday/internal/platform/apperr"
)

// ErrNoRows is returned by repositories when a queried row does not exist.
//
// Services translate it into the domain-specific not-found message.
var ErrNoRows = errors.New("dberr: no rows")

// Wrap inspects a database error and classifies it.
//
// Missing rows become [ErrNoRows], application errors pass through untouched,
// and anything else is hidden behind an [apperr.Internal] that keeps the
// original cause for logging.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}

	// 2. Already classified upstream
	if apperr.IsAppError(err) || errors.Is(err, ErrNoRows) {
		return err
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a Postgres unique violation (23505).
//
// When constraint is non-empty the violated constraint must also match.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key violation (23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
