// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package calendar provides a timezone-free calendar day.

Journal entries belong to a day, not an instant. [Date] keeps only the year,
month and day so that a value never drifts across midnight when it passes
through servers, databases, or clients in different zones.

Accepted input layouts:

  - 2006-01-02 (canonical, ISO 8601)
  - 1-2-2006 (month-day-year with dashes)
  - 1/2/2006 (month-day-year with slashes)

Output is always the canonical form.
*/
package calendar

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Layout is the canonical wire and storage format.
const Layout = "2006-01-02"

// inputLayouts lists every accepted input form, canonical first.
var inputLayouts = []string{Layout, "1-2-2006", "1/2/2006"}

// ErrInvalidDate is returned when a string matches none of the accepted layouts.
var ErrInvalidDate = errors.New("calendar: invalid date")

// Date is a calendar day. The zero value is "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Of returns the calendar day of t in t's own location.
func Of(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// Parse reads a date in any accepted layout.
func Parse(value string) (Date, error) {
	value = strings.TrimSpace(value)
	for _, layout := range inputLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return Of(parsed), nil
		}
	}
	return Date{}, ErrInvalidDate
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String renders d in the canonical layout, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(Layout)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// MarshalJSON encodes d as a canonical date string, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any input layout.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidDate
	}

	parsed, err := Parse(raw)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}
