// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/eachday/internal/platform/apperr"
	"github.com/taibuivan/eachday/internal/platform/ctxutil"
	"github.com/taibuivan/eachday/internal/platform/dberr"
	"github.com/taibuivan/eachday/internal/platform/validate"
)

// # Sentinel Errors

var (
	// ErrInvalidEntry is returned for missing entries and entries of other users.
	ErrInvalidEntry = apperr.NotFound(MsgInvalidEntry)

	// ErrDuplicateDate is returned when the user already has an entry for the date.
	ErrDuplicateDate = apperr.Conflict(MsgDuplicateDate)

	// ErrUnknownOwner is returned when the owning account no longer exists.
	ErrUnknownOwner = apperr.NotFound(MsgUnknownOwner)
)

// # Service Layer

// Service implements the journal entry use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
Create validates a new entry and stores it for the user.

Parameters:
  - context: context.Context
  - userID: string
  - patch: Patch (date required, rating and notes optional)

Returns:
  - *Entry: The stored entry with its ID
  - error: Validation errors, ErrDuplicateDate, or storage failures
*/
func (service *Service) Create(context context.Context, userID string, patch Patch) (*Entry, error) {
	entry := &Entry{UserID: userID}

	validator := &validate.Validator{}
	patch.apply(entry, validator)
	if err := check(entry, validator); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, entry); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateDate):
			return nil, ErrDuplicateDate
		case errors.Is(err, ErrUnknownOwner):
			return nil, ErrUnknownOwner
		}
		return nil, fmt.Errorf("entry_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "entry_created",
		slog.Int64("entry_id", entry.ID),
		slog.String("date", entry.Date.String()),
	)

	return entry, nil
}

/*
Get returns one entry of the user.

Parameters:
  - context: context.Context
  - userID: string
  - id: int64

Returns:
  - *Entry: The entry
  - error: ErrInvalidEntry or storage failures
*/
func (service *Service) Get(context context.Context, userID string, id int64) (*Entry, error) {
	entry, err := service.repository.Get(context, userID, id)
	if err != nil {
		return nil, notFound(err, "entry_service_get_failed")
	}
	return entry, nil
}

// List returns the user's entries, most recent date first.
func (service *Service) List(context context.Context, userID string) ([]Entry, error) {
	entries, err := service.repository.List(context, userID, NewestFirst)
	if err != nil {
		return nil, fmt.Errorf("entry_service_list_failed: %w", err)
	}
	return entries, nil
}

/*
Update merges patch onto the stored entry and re-validates the result.

A rating equal to [ClearRating] removes the stored rating, and so does an
explicit null. Nothing is persisted when the merged entry is invalid.

Parameters:
  - context: context.Context
  - userID: string
  - id: int64
  - patch: Patch

Returns:
  - *Entry: The updated entry
  - error: ErrInvalidEntry, validation errors, ErrDuplicateDate, or storage failures
*/
func (service *Service) Update(context context.Context, userID string, id int64, patch Patch) (*Entry, error) {
	if patch.Rating != nil && *patch.Rating == ClearRating {
		patch.Rating = nil
	}

	entry, err := service.repository.Update(context, userID, id, func(entry *Entry) error {
		validator := &validate.Validator{}
		patch.apply(entry, validator)
		return check(entry, validator)
	})
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus < 500 {
			return nil, appErr
		}
		return nil, notFound(err, "entry_service_update_failed")
	}

	ctxutil.GetLogger(context).InfoContext(context, "entry_updated", slog.Int64("entry_id", id))

	return entry, nil
}

/*
Delete removes one entry of the user.

Parameters:
  - context: context.Context
  - userID: string
  - id: int64

Returns:
  - error: ErrInvalidEntry or storage failures
*/
func (service *Service) Delete(context context.Context, userID string, id int64) error {
	if err := service.repository.Delete(context, userID, id); err != nil {
		return notFound(err, "entry_service_delete_failed")
	}

	ctxutil.GetLogger(context).InfoContext(context, "entry_deleted", slog.Int64("entry_id", id))

	return nil
}

/*
Export renders every entry of the user as chronological CSV.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []byte: CSV document
  - error: Storage failures
*/
func (service *Service) Export(context context.Context, userID string) ([]byte, error) {
	entries, err := service.repository.List(context, userID, OldestFirst)
	if err != nil {
		return nil, fmt.Errorf("entry_service_export_failed: %w", err)
	}

	var buffer bytes.Buffer
	if err := WriteCSV(&buffer, entries); err != nil {
		return nil, fmt.Errorf("entry_service_export_render_failed: %w", err)
	}

	return buffer.Bytes(), nil
}

// notFound maps a missing row to ErrInvalidEntry and wraps anything else.
func notFound(err error, operation string) error {
	if errors.Is(err, dberr.ErrNoRows) {
		return ErrInvalidEntry
	}
	return fmt.Errorf("%s: %w", operation, err)
}
