// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"bytes"
	"encoding/json"

	"github.com/taibuivan/eachday/internal/platform/validate"
	"github.com/taibuivan/eachday/pkg/calendar"
	"github.com/taibuivan/eachday/pkg/pointer"
	"github.com/taibuivan/eachday/pkg/textnorm"
)

// Patch is a decoded entry payload.
//
// A member the client omitted is absent; a member sent as null is present with
// a nil value. Unknown members (id, user_id, ...) are ignored.
type Patch struct {
	Date   *string
	Rating *int
	Notes  *string

	present map[string]bool
}

// Has reports whether the client sent field, including as null.
func (patch Patch) Has(field string) bool {
	return patch.present[field]
}

/*
ParsePatch reads the entry members of a JSON object.

Parameters:
  - object: map[string]json.RawMessage (see requestutil.DecodeObject)

Returns:
  - Patch: The present members
  - error: A field validation error for every member of the wrong JSON type
*/
func ParsePatch(object map[string]json.RawMessage) (Patch, error) {
	patch := Patch{present: make(map[string]bool, 3)}
	validator := &validate.Validator{}

	// decode reports whether field carried a usable non-null value.
	decode := func(field string, target any, message string) bool {
		raw, ok := object[field]
		if !ok {
			return false
		}
		patch.present[field] = true
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return false
		}
		if err := json.Unmarshal(raw, target); err != nil {
			validator.Custom(field, true, message)
			return false
		}
		return true
	}

	var (
		date   string
		rating int
		notes  string
	)
	if decode(FieldDate, &date, validate.MsgInvalidDate) {
		patch.Date = &date
	}
	if decode(FieldRating, &rating, validate.MsgInvalidInt) {
		patch.Rating = &rating
	}
	if decode(FieldNotes, &notes, validate.MsgInvalidText) {
		patch.Notes = &notes
	}

	if err := validator.Err(); err != nil {
		return Patch{}, err
	}

	return patch, nil
}

// apply merges the present members onto entry, recording unparseable dates.
func (patch Patch) apply(entry *Entry, validator *validate.Validator) {
	if patch.Has(FieldDate) {
		entry.Date = calendar.Date{}
		if patch.Date != nil {
			date, err := calendar.Parse(*patch.Date)
			if err != nil {
				validator.Custom(FieldDate, true, validate.MsgInvalidDate)
			}
			entry.Date = date
		}
	}

	if patch.Has(FieldRating) {
		entry.Rating = pointer.Clone(patch.Rating)
	}

	if patch.Has(FieldNotes) {
		entry.Notes = nil
		if patch.Notes != nil {
			entry.Notes = pointer.To(textnorm.Block(*patch.Notes))
		}
	}
}

// check validates a complete entry. Fields already failed by apply are skipped.
func check(entry *Entry, validator *validate.Validator) error {
	failed := make(map[string]bool)
	for _, field := range validator.Fields() {
		failed[field] = true
	}

	if !failed[FieldDate] {
		validator.Custom(FieldDate, entry.Date.IsZero(), validate.MsgRequired)
	}

	if entry.Rating != nil {
		rating := *entry.Rating
		validator.Custom(FieldRating, rating < MinRating || rating > MaxRating, MsgRatingRange)
	}

	if entry.Notes != nil {
		validator.MaxLen(FieldNotes, *entry.Notes, MaxNotesLength)
	}

	return validator.Err()
}
