// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used in the service and handler layers, never in storage.
// It ensures that business logic only operates on semantically valid data.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/eachday/internal/platform/apperr"
)

// Standard field messages shared by every validator in the API.
const (
	MsgRequired     = "Missing data for required field."
	MsgInvalidEmail = "Not a valid email address."
	MsgInvalidDate  = "Not a valid date."
	MsgInvalidInt   = "Not a valid integer."
	MsgInvalidText  = "Not a valid string."
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.BadRequest("Invalid JSON body")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs  map[string][]string
	order []string
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, MsgRequired)
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
//
// Empty values are skipped; combine with [Validator.Required] when mandatory.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	// Bare addresses only; display-name forms like "Joe <a@b.c>" are rejected.
	address, err := mail.ParseAddress(value)
	if err != nil || address.Address != value {
		v.add(field, MsgInvalidEmail)
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("rating", rating < 1 || rating > 10, "Rating must be between 1 and 10")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Fields returns the failed field names in the order they first failed.
func (v *Validator) Fields() []string {
	return v.order
}

// add appends a message to the field's message list.
func (v *Validator) add(field, message string) {
	if v.errs == nil {
		v.errs = make(map[string][]string)
	}
	if _, seen := v.errs[field]; !seen {
		v.order = append(v.order, field)
	}
	v.errs[field] = append(v.errs[field], message)
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", map[string][]string{
		field: {message},
	})
}
