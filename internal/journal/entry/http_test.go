// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/eachday/internal/journal/entry"
	"github.com/taibuivan/eachday/internal/journal/entry/entrytest"
	"github.com/taibuivan/eachday/internal/platform/middleware"
	"github.com/taibuivan/eachday/internal/platform/sec"
	"github.com/taibuivan/eachday/internal/users/auth/authtest"
)

type server struct {
	router     http.Handler
	repository *entrytest.Repository
	token      string
}

func newServer(t *testing.T) *server {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret")
	require.NoError(t, err)
	token, err := tokens.Issue(owner)
	require.NoError(t, err)

	repository := entrytest.NewRepository()
	router := chi.NewRouter()
	entry.NewHandler(entry.NewService(repository)).
		RegisterRoutes(router, middleware.Authenticate(tokens, authtest.NewRevocationRepository()))

	return &server{router: router, repository: repository, token: token}
}

func (s *server) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		request.Header.Set("Authorization", "Bearer "+s.token)
	}

	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, request)
	return recorder
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestHandler_CreateAndFetch(t *testing.T) {
	s := newServer(t)

	recorder := s.do(t, http.MethodPost, "/entry", `{"notes":"Hello world","rating":5,"date":"1-1-2017"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	body := decode(t, recorder)
	assert.Equal(t, "success", body.Status)

	var created map[string]any
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, "Hello world", created["notes"])
	assert.EqualValues(t, 5, created["rating"])
	assert.Equal(t, "2017-01-01", created["date"])
	assert.NotContains(t, created, "user_id")

	recorder = s.do(t, http.MethodGet, fmt.Sprintf("/entry/%v", created["id"]), "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, string(body.Data), string(decode(t, recorder).Data))

	recorder = s.do(t, http.MethodGet, "/entry", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &listed))
	assert.Len(t, listed, 1)
}

func TestHandler_ListEmpty(t *testing.T) {
	s := newServer(t)

	recorder := s.do(t, http.MethodGet, "/entry", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, string(decode(t, recorder).Data))
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"duplicate_date", http.MethodPost, "/entry", `{"notes":"Hello world","rating":5,"date":"2017-01-01"}`, http.StatusBadRequest, `"An entry for this date already exists!"`},
		{"invalid_json", http.MethodPost, "/entry", `not json`, http.StatusBadRequest, `"Invalid JSON body"`},
		{"array_body", http.MethodPost, "/entry", `[1,2]`, http.StatusBadRequest, `"Invalid JSON body"`},
		{"rating_range", http.MethodPut, "/entry/1", `{"rating":15}`, http.StatusBadRequest, `{"rating":["Rating must be between 1 and 10"]}`},
		{"missing_entry", http.MethodGet, "/entry/999", ``, http.StatusNotFound, `"Invalid entry id"`},
		{"non_numeric_id", http.MethodGet, "/entry/abc", ``, http.StatusNotFound, `"Invalid entry id"`},
		{"delete_missing", http.MethodDelete, "/entry/999", ``, http.StatusNotFound, `"Invalid entry id"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)
			seed(s.repository, owner, day(2017, time.January, 1), 1, "foobar")

			recorder := s.do(t, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			body := decode(t, recorder)
			assert.Equal(t, "error", body.Status)
			assert.Empty(t, body.Data)
			assert.JSONEq(t, tt.wantError, string(body.Error))
		})
	}
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	s := newServer(t)
	id := seed(s.repository, owner, day(2017, time.January, 1), 1, "foobar")
	path := fmt.Sprintf("/entry/%d", id)

	recorder := s.do(t, http.MethodPut, path, `{"rating":0}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"date":"2017-01-01","rating":null,"notes":"foobar"}`, id), string(decode(t, recorder).Data))

	recorder = s.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Successfully deleted entry.", decode(t, recorder).Message)
	assert.Zero(t, s.repository.Count(owner))
}

func TestHandler_OtherUsersEntry(t *testing.T) {
	s := newServer(t)
	id := seed(s.repository, stranger, day(2017, time.January, 1), 1, "foobar")

	recorder := s.do(t, http.MethodPut, fmt.Sprintf("/entry/%d", id), `{"rating":5,"notes":"malicious change"}`)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `"Invalid entry id"`, string(decode(t, recorder).Error))
}

func TestHandler_Export(t *testing.T) {
	s := newServer(t)
	seed(s.repository, owner, day(2017, time.January, 1), 1, "foobar")
	seed(s.repository, owner, day(2017, time.January, 2), 5, "deadbeef")

	recorder := s.do(t, http.MethodGet, "/export", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/csv; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=eachday-export.csv", recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "Date,Rating,Notes\r\n2017-01-01,1,foobar\r\n2017-01-02,5,deadbeef\r\n", recorder.Body.String())
}

func TestHandler_RequiresToken(t *testing.T) {
	s := newServer(t)
	s.token = ""

	for _, path := range []string{"/entry", "/export"} {
		recorder := s.do(t, http.MethodGet, path, "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code, path)
		assert.JSONEq(t, `"Please provide an auth token"`, string(decode(t, recorder).Error))
	}
}
