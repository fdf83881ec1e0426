// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package entry implements the dated journal entries of a user.

A user writes at most one entry per calendar day. Each entry carries an
optional 1 to 10 rating and optional free-text notes.

# Architecture

  - Service: Validates payloads and applies partial updates on top of the
    stored entry before re-validating the merged result.
  - Repository: Owner-scoped persistence. An entry that belongs to someone
    else is indistinguishable from a missing one.
  - Export: Chronological CSV rendering of every entry a user owns.
*/
package entry

import (
	"github.com/taibuivan/eachday/pkg/calendar"
)

// # Client Messages

const (
	MsgInvalidEntry  = "Invalid entry id"
	MsgDuplicateDate = "An entry for this date already exists!"
	MsgDeleted       = "Successfully deleted entry."
	MsgRatingRange   = "Rating must be between 1 and 10"
	MsgUnknownOwner  = "Invalid user id"
)

// # Field Identifiers

const (
	FieldDate   = "date"
	FieldRating = "rating"
	FieldNotes  = "notes"
)

// # Limits

const (
	MinRating = 1
	MaxRating = 10

	// ClearRating, sent as the rating of an update, removes the stored rating.
	ClearRating = 0

	// MaxNotesLength bounds notes (in characters).
	MaxNotesLength = 20000
)

// # Domain Entities

// Entry is one day of a user's journal.
type Entry struct {
	ID     int64         `json:"id"`
	UserID string        `json:"-"`
	Date   calendar.Date `json:"date"`
	Rating *int          `json:"rating"`
	Notes  *string       `json:"notes"`
}
