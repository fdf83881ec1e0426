// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalizes user-supplied Unicode text before storage.
//
// # Usage
//
// Display names and journal notes arrive from browsers and mobile keyboards in
// mixed normalization forms. Storing them as NFC keeps equal-looking strings
// byte-equal, which matters for CSV exports and comparisons.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Line normalizes a single-line value such as a display name.
//
// # Transformation Pipeline
//
// 1. Composes to NFC (e + combining acute → é).
// 2. Drops control characters that are not whitespace.
// 3. Collapses runs of whitespace, line breaks included, and trims the ends.
func Line(s string) string {
	t := transform.Chain(norm.NFC, transform.RemoveFunc(isInvisibleControl))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = norm.NFC.String(s)
	}
	return strings.Join(strings.Fields(result), " ")
}

// Block normalizes multi-line free text such as entry notes.
//
// Line breaks and tabs survive; CRLF pairs become LF and other control
// characters are removed. Leading and trailing whitespace is kept.
func Block(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	t := transform.Chain(norm.NFC, transform.RemoveFunc(isStrippedControl))
	result, _, err := transform.String(t, s)
	if err != nil {
		return norm.NFC.String(s)
	}
	return result
}

// isInvisibleControl reports whether r is a control character that is not whitespace.
func isInvisibleControl(r rune) bool {
	return unicode.IsControl(r) && !unicode.IsSpace(r)
}

// isStrippedControl reports whether r is a control character other than LF or TAB.
func isStrippedControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t'
}
