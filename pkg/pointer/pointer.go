// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

EachDay models optional columns (an entry's rating and notes) as pointers where
nil means absent. These helpers keep the nil handling out of business logic.
*/
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value of T when p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Clone returns a pointer to a copy of *p, or nil when p is nil.
//
// The result never aliases p.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return To(*p)
}

// Equal reports whether both pointers are nil or both point to equal values.
func Equal[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
