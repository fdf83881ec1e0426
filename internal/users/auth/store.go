// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Lookups of missing rows return [dberr.ErrNoRows]; a second account with the
// same email returns [ErrUserExists].
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNoRows or database failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNoRows or database failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrUserExists or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists the email, name and password hash of an existing account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: dberr.ErrNoRows, ErrUserExists or persistence failures
	*/
	Update(context context.Context, user *User) error
}

// # Revocation List

// RevocationRepository stores auth tokens that were explicitly logged out.
type RevocationRepository interface {

	/*
		Revoke adds a token to the list. Revoking twice is a no-op.

		Parameters:
		  - context: context.Context
		  - token: string (raw token)
		  - expiresAt: time.Time (the token's own expiry)

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, token string, expiresAt time.Time) error

	/*
		IsRevoked reports whether a token is on the list.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - bool: true when revoked
		  - error: Storage failures
	*/
	IsRevoked(context context.Context, token string) (bool, error)

	/*
		PurgeExpired deletes entries whose token expired before the cutoff.
		Expired tokens are rejected before the list is consulted, so these rows
		no longer affect any decision.

		Parameters:
		  - context: context.Context
		  - before: time.Time

		Returns:
		  - int64: Number of rows removed
		  - error: Persistence failures
	*/
	PurgeExpired(context context.Context, before time.Time) (int64, error)
}
