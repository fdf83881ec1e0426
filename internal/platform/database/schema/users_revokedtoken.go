// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserRevokedTokenTable represents the 'users.revokedtoken' table
type UserRevokedTokenTable struct {
	Table     string
	Token     string
	ExpiresAt string
	RevokedAt string
}

// UserRevokedToken is the schema definition for users.revokedtoken
var UserRevokedToken = UserRevokedTokenTable{
	Table:     "users.revokedtoken",
	Token:     "token",
	ExpiresAt: "expiresat",
	RevokedAt: "revokedat",
}
