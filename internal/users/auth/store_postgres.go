// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/eachday/internal/platform/database/schema"
	"github.com/taibuivan/eachday/internal/platform/dberr"
	"github.com/taibuivan/eachday/internal/platform/sec"
	"github.com/taibuivan/eachday/pkg/calendar"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var (
	userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

	selectUserByID = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	selectUserByEmail = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Email)
)

/*
Create persists a new user record into the users.account table.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: ErrUserExists on a duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (id, email, passwordhash, name, joinedon)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.JoinedOn.Time(),
	)

	if err != nil {
		if dberr.IsUniqueViolation(err, schema.EmailKey) {
			return ErrUserExists
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNoRows or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	user, err := scanUser(repository.pool.QueryRow(context, selectUserByEmail, email))
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}
	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNoRows or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	user, err := scanUser(repository.pool.QueryRow(context, selectUserByID, id))
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}
	return user, nil
}

/*
Update persists the mutable columns of an account. joinedon is never written.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: dberr.ErrNoRows, ErrUserExists, or database errors
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET email = $2, passwordhash = $3, name = $4, updatedat = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, user.ID, user.Email, user.PasswordHash, user.Name)
	if err != nil {
		if dberr.IsUniqueViolation(err, schema.EmailKey) {
			return ErrUserExists
		}
		return fmt.Errorf("postgres_user_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser hydrates a User in [schema.UserAccountTable.Columns] order.
func scanUser(row rowScanner) (*User, error) {
	var (
		user     User
		joinedOn time.Time
	)

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &joinedOn)
	if err != nil {
		return nil, dberr.Wrap(err)
	}

	user.JoinedOn = calendar.Of(joinedOn)
	return &user, nil
}

// # Revocation Repository

// PostgresRevocationRepository is the authoritative revocation list.
//
// Tokens are stored as SHA-256 digests; the raw bearer credential never
// reaches the database.
type PostgresRevocationRepository struct {
	pool *pgxpool.Pool
}

// NewRevocationRepository creates the PostgreSQL revocation list.
func NewRevocationRepository(pool *pgxpool.Pool) *PostgresRevocationRepository {
	return &PostgresRevocationRepository{pool: pool}
}

/*
Revoke inserts the token digest, ignoring an existing row.

Parameters:
  - context: context.Context
  - token: string
  - expiresAt: time.Time

Returns:
  - error: Database errors
*/
func (repository *PostgresRevocationRepository) Revoke(context context.Context, token string, expiresAt time.Time) error {
	const query = `
		INSERT INTO users.revokedtoken (token, expiresat)
		VALUES ($1, $2)
		ON CONFLICT (token) DO NOTHING`

	if _, err := repository.pool.Exec(context, query, sec.HashToken(token), expiresAt); err != nil {
		return fmt.Errorf("postgres_revocation_repo_revoke_failed: %w", err)
	}

	return nil
}

/*
IsRevoked checks the list for the token digest.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - bool: true when present
  - error: Database errors
*/
func (repository *PostgresRevocationRepository) IsRevoked(context context.Context, token string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users.revokedtoken WHERE token = $1)`

	var revoked bool
	if err := repository.pool.QueryRow(context, query, sec.HashToken(token)).Scan(&revoked); err != nil {
		return false, fmt.Errorf("postgres_revocation_repo_lookup_failed: %w", err)
	}

	return revoked, nil
}

/*
PurgeExpired removes rows for tokens that expired before the cutoff.

Parameters:
  - context: context.Context
  - before: time.Time

Returns:
  - int64: Rows removed
  - error: Database errors
*/
func (repository *PostgresRevocationRepository) PurgeExpired(context context.Context, before time.Time) (int64, error) {
	const query = `DELETE FROM users.revokedtoken WHERE expiresat < $1`

	tag, err := repository.pool.Exec(context, query, before)
	if err != nil {
		return 0, fmt.Errorf("postgres_revocation_repo_purge_failed: %w", err)
	}

	return tag.RowsAffected(), nil
}
