// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/eachday/internal/platform/request"
	"github.com/taibuivan/eachday/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// This layer is strictly responsible for transport concerns (status codes,
// headers, JSON); validation and token handling live in [Service].
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes attaches the authentication endpoints to router.
//
// # Endpoints
//   - POST /register : Creates a new account and returns its first token.
//   - POST /login    : Authenticates and returns a token.
//   - POST /logout   : Revokes the presented token (protected).
func (handler *Handler) RegisterRoutes(router chi.Router, authenticate func(http.Handler) http.Handler) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	router.With(authenticate).Post("/logout", handler.logout)
}

/*
Register handles the creation of a new user account.

POST /register

Request:
  - Body: RegisterInput (email, password, name)

Response:
  - 201: auth_token of the new account
  - 400: Field errors, "User already exists.", or "Invalid JSON body"
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Token(writer, http.StatusCreated, MsgRegistered, token)
}

/*
Login authenticates a user.

POST /login

Request:
  - Body: LoginInput (email, password)

Response:
  - 200: auth_token
  - 401: "Invalid login."
  - 404: "User does not exist."
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Token(writer, http.StatusOK, MsgLoggedIn, token)
}

/*
Logout revokes the token used for this request.

POST /logout

Response:
  - 200: "Successfully logged out"
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, http.StatusOK, MsgLoggedOut)
}
