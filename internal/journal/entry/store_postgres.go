// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/eachday/internal/platform/database/schema"
	"github.com/taibuivan/eachday/internal/platform/dberr"
	"github.com/taibuivan/eachday/internal/platform/postgres"
	"github.com/taibuivan/eachday/pkg/calendar"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the entry Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	entryColumns = strings.Join(schema.JournalEntry.Columns(), ", ")

	selectOwnedEntry = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		entryColumns, schema.JournalEntry.Table, schema.JournalEntry.UserID, schema.JournalEntry.ID)

	selectOwnedEntries = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		entryColumns, schema.JournalEntry.Table, schema.JournalEntry.UserID, schema.JournalEntry.Date)

	dateTaken = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s <> $3)`,
		schema.JournalEntry.Table, schema.JournalEntry.UserID, schema.JournalEntry.Date, schema.JournalEntry.ID)
)

/*
Create checks the (user, date) slot and inserts the entry in one transaction.

A concurrent writer that wins the race makes the insert fail on the unique
constraint; that is reported as the same duplicate error.

Parameters:
  - context: context.Context
  - entry: *Entry

Returns:
  - error: ErrDuplicateDate, ErrUnknownOwner, or database errors
*/
func (repository *PostgresRepository) Create(context context.Context, entry *Entry) error {
	const query = `
		INSERT INTO journal.entry (userid, date, rating, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		if err := ensureDateFree(context, tx, entry.UserID, entry.Date, 0); err != nil {
			return err
		}
		return tx.QueryRow(context, query,
			entry.UserID,
			entry.Date.Time(),
			entry.Rating,
			entry.Notes,
		).Scan(&entry.ID)
	})

	if err != nil {
		return classifyWrite(err, "postgres_entry_repo_create_failed")
	}

	return nil
}

/*
Get retrieves one entry scoped to its owner.

Parameters:
  - context: context.Context
  - userID: string
  - id: int64

Returns:
  - *Entry: Hydrated entity
  - error: dberr.ErrNoRows or database errors
*/
func (repository *PostgresRepository) Get(context context.Context, userID string, id int64) (*Entry, error) {
	entry, err := scanEntry(repository.pool.QueryRow(context, selectOwnedEntry, userID, id))
	if err != nil {
		return nil, fmt.Errorf("postgres_entry_repo_get_failed: %w", err)
	}
	return entry, nil
}

/*
List retrieves all entries of a user ordered by date.

Parameters:
  - context: context.Context
  - userID: string
  - order: Order

Returns:
  - []Entry: Entries, never nil
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context, userID string, order Order) ([]Entry, error) {
	query := selectOwnedEntries + " DESC"
	if order == OldestFirst {
		query = selectOwnedEntries + " ASC"
	}

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_entry_repo_list_failed: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_entry_repo_list_scan_failed: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_entry_repo_list_failed: %w", err)
	}

	return entries, nil
}

/*
Update locks the owned row, applies mutate, and writes the merged entry back.

Parameters:
  - context: context.Context
  - userID: string
  - id: int64
  - mutate: func(*Entry) error

Returns:
  - *Entry: The stored entry
  - error: dberr.ErrNoRows, the mutate error, ErrDuplicateDate, or database errors
*/
func (repository *PostgresRepository) Update(context context.Context, userID string, id int64, mutate func(*Entry) error) (*Entry, error) {
	const query = `
		UPDATE journal.entry
		SET date = $3, rating = $4, notes = $5, updatedat = NOW()
		WHERE userid = $1 AND id = $2`

	var updated *Entry

	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		entry, err := scanEntry(tx.QueryRow(context, selectOwnedEntry+" FOR UPDATE", userID, id))
		if err != nil {
			return err
		}

		if err := mutate(entry); err != nil {
			return err
		}

		if err := ensureDateFree(context, tx, userID, entry.Date, id); err != nil {
			return err
		}

		if _, err := tx.Exec(context, query, userID, id, entry.Date.Time(), entry.Rating, entry.Notes); err != nil {
			return err
		}

		updated = entry
		return nil
	})

	if err != nil {
		return nil, classifyWrite(err, "postgres_entry_repo_update_failed")
	}

	return updated, nil
}

/*
Delete removes an owned entry.

Parameters:
  - context: context.Context
  - userID: string
  - id: int64

Returns:
  - error: dberr.ErrNoRows or database errors
*/
func (repository *PostgresRepository) Delete(context context.Context, userID string, id int64) error {
	const query = `DELETE FROM journal.entry WHERE userid = $1 AND id = $2`

	tag, err := repository.pool.Exec(context, query, userID, id)
	if err != nil {
		return fmt.Errorf("postgres_entry_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}

// ensureDateFree fails with ErrDuplicateDate when another entry of the user
// already occupies date. exceptID excludes the entry being edited.
func ensureDateFree(context context.Context, tx postgres.DBTX, userID string, date calendar.Date, exceptID int64) error {
	var taken bool
	if err := tx.QueryRow(context, dateTaken, userID, date.Time(), exceptID).Scan(&taken); err != nil {
		return err
	}
	if taken {
		return ErrDuplicateDate
	}
	return nil
}

// classifyWrite maps constraint violations to domain errors.
func classifyWrite(err error, operation string) error {
	switch {
	case dberr.IsUniqueViolation(err, schema.UserDateKey):
		return ErrDuplicateDate
	case dberr.IsForeignKeyViolation(err):
		return ErrUnknownOwner
	}

	return fmt.Errorf("%s: %w", operation, err)
}

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry hydrates an Entry in [schema.JournalEntryTable.Columns] order.
func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry  Entry
		date   time.Time
		rating pgtype.Int2
		notes  pgtype.Text
	)

	if err := row.Scan(&entry.ID, &entry.UserID, &date, &rating, &notes); err != nil {
		return nil, dberr.Wrap(err)
	}

	entry.Date = calendar.Of(date)
	if rating.Valid {
		value := int(rating.Int16)
		entry.Rating = &value
	}
	if notes.Valid {
		entry.Notes = &notes.String
	}

	return &entry, nil
}
