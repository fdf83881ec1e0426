// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/eachday/internal/platform/request"
	"github.com/taibuivan/eachday/internal/platform/respond"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// RegisterRoutes attaches the protected account endpoints to router.
func (handler *Handler) RegisterRoutes(router chi.Router, authenticate func(http.Handler) http.Handler) {
	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)

		protected.Get("/user", handler.getUser)
		protected.Put("/user", handler.updateUser)
	})
}

/*
GET /user.

Description: Retrieves the profile of the authenticated user.

Response:
  - 200: User (id, email, name, joined_on)
  - 404: "Invalid user id"
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PUT /user.

Description: Edits email, name or password after confirming the current password.

Request:
  - body: UpdateInput

Response:
  - 200: Profile (user fields plus auth_token)
  - 400: Field errors or "User already exists."
  - 401: "Must provide password" or "Invalid password."
  - 404: "Invalid user id"
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.UpdateProfile(request.Context(), claims.UserID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
