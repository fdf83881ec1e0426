// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user identity and the auth token lifecycle.

It defines the User entity and the logic for registration, login, and logout.

# Architecture

  - Service: Orchestrates the use cases (Register, Login, Logout).
  - Repository: Abstracted interfaces for Postgres (users, revoked tokens) and
    a Redis read-through cache in front of the revocation list.
  - Security: bcrypt password hashes and HS256-signed tokens from [sec].

Tokens are stateless; logging out adds the token to a revocation list that the
authentication middleware consults on every protected request.
*/
package auth

import (
	"github.com/taibuivan/eachday/pkg/calendar"
)

// # Domain Entities

// User represents a registered EachDay member.
type User struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"` // Never serialized.
	Name         string        `json:"name"`
	JoinedOn     calendar.Date `json:"joined_on"`
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginInput holds the credentials of an authentication attempt.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
