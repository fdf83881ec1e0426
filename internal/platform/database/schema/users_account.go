// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names of the EachDay database.
//
// Repositories build SQL from these definitions so a column rename touches a
// single file.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Email     string
	Password  string
	Name      string
	JoinedOn  string
	CreatedAt string
	UpdatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Email:     "email",
	Password:  "passwordhash",
	Name:      "name",
	JoinedOn:  "joinedon",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns the columns scanned into a user, in scan order.
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Email, t.Password, t.Name, t.JoinedOn}
}

// EmailKey is the unique constraint guarding account emails.
const EmailKey = "account_email_key"
