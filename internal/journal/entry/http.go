// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/eachday/internal/platform/request"
	"github.com/taibuivan/eachday/internal/platform/respond"
)

// Handler implements the journal entry HTTP endpoints.
type Handler struct {
	entryService *Service
}

// NewHandler constructs a new entry [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{entryService: service}
}

// RegisterRoutes attaches the protected entry endpoints to router.
//
// # Endpoints
//   - GET    /entry      : All entries, newest first.
//   - POST   /entry      : Creates an entry.
//   - GET    /entry/{id} : One entry.
//   - PUT    /entry/{id} : Partial update.
//   - DELETE /entry/{id} : Removes an entry.
//   - GET    /export     : CSV download, oldest first.
func (handler *Handler) RegisterRoutes(router chi.Router, authenticate func(http.Handler) http.Handler) {
	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)

		protected.Route("/entry", func(entries chi.Router) {
			entries.Get("/", handler.list)
			entries.Post("/", handler.create)
			entries.Get("/{entryID}", handler.get)
			entries.Put("/{entryID}", handler.update)
			entries.Delete("/{entryID}", handler.delete)
		})

		protected.Get("/export", handler.export)
	})
}

/*
GET /entry.

Response:
  - 200: []Entry ordered by date, newest first
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.entryService.List(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
POST /entry.

Request:
  - body: {date, rating?, notes?}

Response:
  - 201: Entry
  - 400: Field errors or "An entry for this date already exists!"
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch, err := decodePatch(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.entryService.Create(request.Context(), claims.UserID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
GET /entry/{entryID}.

Response:
  - 200: Entry
  - 404: "Invalid entry id"
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entryID, err := requestutil.Int64Param(request, "entryID", MsgInvalidEntry)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.entryService.Get(request.Context(), claims.UserID, entryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
PUT /entry/{entryID}.

Request:
  - body: any subset of {date, rating, notes}; rating 0 or null clears it

Response:
  - 200: Entry
  - 400: Field errors or "An entry for this date already exists!"
  - 404: "Invalid entry id"
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entryID, err := requestutil.Int64Param(request, "entryID", MsgInvalidEntry)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch, err := decodePatch(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.entryService.Update(request.Context(), claims.UserID, entryID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
DELETE /entry/{entryID}.

Response:
  - 200: "Successfully deleted entry."
  - 404: "Invalid entry id"
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entryID, err := requestutil.Int64Param(request, "entryID", MsgInvalidEntry)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.entryService.Delete(request.Context(), claims.UserID, entryID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, http.StatusOK, MsgDeleted)
}

/*
GET /export.

Response:
  - 200: text/csv attachment
*/
func (handler *Handler) export(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body, err := handler.entryService.Export(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.CSV(writer, ExportFilename, body)
}

// decodePatch reads the request body as an entry [Patch].
func decodePatch(request *http.Request) (Patch, error) {
	object, err := requestutil.DecodeObject(request)
	if err != nil {
		return Patch{}, err
	}
	return ParsePatch(object)
}
