// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Client Messages

const (
	MsgRegistered   = "Successfully registered."
	MsgLoggedIn     = "Successfully logged in."
	MsgLoggedOut    = "Successfully logged out"
	MsgUserExists   = "User already exists."
	MsgUnknownUser  = "User does not exist."
	MsgInvalidLogin = "Invalid login."
	MsgInvalidUser  = "Invalid user id"
)

// # Field Identifiers

// JSON field names shared by the auth and account payloads.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldName        = "name"
	FieldNewPassword = "new_password"
	FieldJoinedOn    = "joined_on"
)

// # Limits

const (
	// MaxNameLength bounds display names (in characters).
	MaxNameLength = 100

	// MaxEmailLength follows the RFC 5321 path limit.
	MaxEmailLength = 254

	// MaxPasswordBytes is the bcrypt input limit; longer inputs are rejected
	// instead of being silently truncated.
	MaxPasswordBytes = 72
)
