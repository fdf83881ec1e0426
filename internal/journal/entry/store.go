// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"context"
)

// Order selects the date ordering of a listing.
type Order int

const (
	// NewestFirst lists the most recent day first.
	NewestFirst Order = iota

	// OldestFirst lists days chronologically.
	OldestFirst
)

// # Repository Contract

// Repository defines the owner-scoped data access contract for entries.
//
// Every lookup is filtered by the owning user; an entry of another user
// returns [dberr.ErrNoRows] exactly like a missing one.
type Repository interface {

	/*
		Create persists a new entry and assigns its ID.

		The date check and the insert are atomic.

		Parameters:
		  - context: context.Context
		  - entry: *Entry (UserID and Date set)

		Returns:
		  - error: ErrDuplicateDate, ErrUnknownOwner, or persistence failures
	*/
	Create(context context.Context, entry *Entry) error

	/*
		Get returns one entry of the user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - id: int64

		Returns:
		  - *Entry: Hydrated entity
		  - error: dberr.ErrNoRows or database failures
	*/
	Get(context context.Context, userID string, id int64) (*Entry, error)

	/*
		List returns every entry of the user in the requested date order.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - order: Order

		Returns:
		  - []Entry: Possibly empty, never nil
		  - error: Database failures
	*/
	List(context context.Context, userID string, order Order) ([]Entry, error)

	/*
		Update locks one entry of the user, hands a copy to mutate, and persists
		the result when mutate succeeds. Nothing is written when mutate fails.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - id: int64
		  - mutate: func(*Entry) error

		Returns:
		  - *Entry: The persisted entry
		  - error: dberr.ErrNoRows, the error of mutate, ErrDuplicateDate, or
		    persistence failures
	*/
	Update(context context.Context, userID string, id int64, mutate func(*Entry) error) (*Entry, error)

	/*
		Delete removes one entry of the user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - id: int64

		Returns:
		  - error: dberr.ErrNoRows or database failures
	*/
	Delete(context context.Context, userID string, id int64) error
}
