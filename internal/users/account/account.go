// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles self-service profile management.

An authenticated user can read their profile and change their email, display
name, or password. Every change must be confirmed with the current password.

# Architecture

  - Entities: UpdateInput, Profile (DTO).
  - Domain: This package depends on the auth package for the User entity,
    its repository, and token issuance.
*/
package account

import (
	"github.com/taibuivan/eachday/internal/users/auth"
)

// # Client Messages

const (
	MsgPasswordRequired = "Must provide password"
	MsgInvalidPassword  = "Invalid password."
)

// # Data Transfer Objects

// UpdateInput is the body of a profile edit.
//
// Password is a pointer so an absent field can be told apart from an empty one.
// Empty Email, Name and NewPassword leave the stored value unchanged. Any
// joined_on member is ignored.
type UpdateInput struct {
	Password    *string `json:"password"`
	NewPassword string  `json:"new_password"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
}

// Profile is an updated account returned together with a freshly issued token.
type Profile struct {
	auth.User
	AuthToken string `json:"auth_token"`
}
