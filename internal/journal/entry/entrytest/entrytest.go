// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package entrytest provides an in-memory entry repository for tests.
package entrytest

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/eachday/internal/journal/entry"
	"github.com/taibuivan/eachday/internal/platform/dberr"
	"github.com/taibuivan/eachday/pkg/pointer"
)

// Repository is a map-backed [entry.Repository] enforcing one entry per user per day.
type Repository struct {
	mu      sync.Mutex
	entries map[int64]entry.Entry
	nextID  int64

	// Err, when set, is returned by every method.
	Err error
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{entries: make(map[int64]entry.Entry), nextID: 1}
}

// Create implements [entry.Repository].
func (repository *Repository) Create(_ context.Context, value *entry.Entry) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return repository.Err
	}

	if repository.dateTaken(value.UserID, value, 0) {
		return entry.ErrDuplicateDate
	}

	value.ID = repository.nextID
	repository.nextID++
	repository.entries[value.ID] = clone(*value)
	return nil
}

// Get implements [entry.Repository].
func (repository *Repository) Get(_ context.Context, userID string, id int64) (*entry.Entry, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return nil, repository.Err
	}

	stored, ok := repository.entries[id]
	if !ok || stored.UserID != userID {
		return nil, dberr.ErrNoRows
	}

	found := clone(stored)
	return &found, nil
}

// List implements [entry.Repository].
func (repository *Repository) List(_ context.Context, userID string, order entry.Order) ([]entry.Entry, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return nil, repository.Err
	}

	entries := make([]entry.Entry, 0)
	for _, stored := range repository.entries {
		if stored.UserID == userID {
			entries = append(entries, clone(stored))
		}
	}

	slices.SortFunc(entries, func(a, b entry.Entry) int {
		result := a.Date.Time().Compare(b.Date.Time())
		if order == entry.NewestFirst {
			return -result
		}
		return result
	})

	return entries, nil
}

// Update implements [entry.Repository].
func (repository *Repository) Update(_ context.Context, userID string, id int64, mutate func(*entry.Entry) error) (*entry.Entry, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return nil, repository.Err
	}

	stored, ok := repository.entries[id]
	if !ok || stored.UserID != userID {
		return nil, dberr.ErrNoRows
	}

	working := clone(stored)
	if err := mutate(&working); err != nil {
		return nil, err
	}

	if repository.dateTaken(userID, &working, id) {
		return nil, entry.ErrDuplicateDate
	}

	repository.entries[id] = clone(working)
	return &working, nil
}

// Delete implements [entry.Repository].
func (repository *Repository) Delete(_ context.Context, userID string, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.Err != nil {
		return repository.Err
	}

	stored, ok := repository.entries[id]
	if !ok || stored.UserID != userID {
		return dberr.ErrNoRows
	}

	delete(repository.entries, id)
	return nil
}

// Put stores value as-is and returns its assigned ID. Used to seed fixtures.
func (repository *Repository) Put(value entry.Entry) int64 {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	value.ID = repository.nextID
	repository.nextID++
	repository.entries[value.ID] = clone(value)
	return value.ID
}

// Count returns the number of entries the user owns.
func (repository *Repository) Count(userID string) int {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	count := 0
	for _, stored := range repository.entries {
		if stored.UserID == userID {
			count++
		}
	}
	return count
}

func (repository *Repository) dateTaken(userID string, value *entry.Entry, exceptID int64) bool {
	for id, stored := range repository.entries {
		if id != exceptID && stored.UserID == userID && stored.Date == value.Date {
			return true
		}
	}
	return false
}

// clone detaches the pointer fields of value from the stored copy.
func clone(value entry.Entry) entry.Entry {
	value.Rating = pointer.Clone(value.Rating)
	value.Notes = pointer.Clone(value.Notes)
	return value
}
