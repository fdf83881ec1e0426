// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// JournalEntryTable represents the 'journal.entry' table
type JournalEntryTable struct {
	Table     string
	ID        string
	UserID    string
	Date      string
	Rating    string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// JournalEntry is the schema definition for journal.entry
var JournalEntry = JournalEntryTable{
	Table:     "journal.entry",
	ID:        "id",
	UserID:    "userid",
	Date:      "date",
	Rating:    "rating",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns the columns scanned into an entry, in scan order.
func (t JournalEntryTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Date, t.Rating, t.Notes}
}

// UserDateKey is the unique constraint allowing one entry per user per day.
const UserDateKey = "entry_user_date_key"
