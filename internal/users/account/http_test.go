// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/eachday/internal/platform/middleware"
	"github.com/taibuivan/eachday/internal/users/account"
	"github.com/taibuivan/eachday/internal/users/auth/authtest"
)

type response struct {
	Status string          `json:"status"`
	Data   map[string]any  `json:"data"`
	Error  json.RawMessage `json:"error"`
}

func serve(t *testing.T, f *fixture, method, body string) (int, response) {
	t.Helper()

	router := chi.NewRouter()
	authenticate := middleware.Authenticate(f.tokens, authtest.NewRevocationRepository())
	account.NewHandler(f.service).RegisterRoutes(router, authenticate)

	token, err := f.tokens.Issue(f.user.ID)
	require.NoError(t, err)

	request := httptest.NewRequest(method, "/user", strings.NewReader(body))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var decoded response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return recorder.Code, decoded
}

func TestHandler_GetUser(t *testing.T) {
	f := newFixture(t)

	status, body := serve(t, f, http.MethodGet, "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, f.user.ID, body.Data["id"])
	assert.Equal(t, "foo@bar.com", body.Data["email"])
	assert.Equal(t, "joe", body.Data["name"])
	assert.Equal(t, "2017-01-01", body.Data["joined_on"])
	assert.NotContains(t, body.Data, "password")
	assert.NotContains(t, body.Data, "PasswordHash")
}

func TestHandler_UpdateUser(t *testing.T) {
	f := newFixture(t)

	status, body := serve(t, f, http.MethodPut, `{"email":"new@email.website","name":"Donald Knuth","password":"test"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "new@email.website", body.Data["email"])
	assert.Equal(t, "Donald Knuth", body.Data["name"])
	assert.NotContains(t, body.Data, "password")

	token, ok := body.Data["auth_token"].(string)
	require.True(t, ok)
	claims, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, claims.UserID)
}

func TestHandler_UpdateUser_JoinedOnIgnored(t *testing.T) {
	f := newFixture(t)

	status, body := serve(t, f, http.MethodPut, `{"joined_on":"2018-01-01","password":"test"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2017-01-01", body.Data["joined_on"])
}

func TestHandler_UpdateUser_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"wrong_password", `{"email":"new@email.website","password":"foobar"}`, http.StatusUnauthorized, "Invalid password."},
		{"missing_password", `{"email":"new@email.website","new_password":"foobar"}`, http.StatusUnauthorized, "Must provide password"},
		{"invalid_json", `{"password":`, http.StatusBadRequest, "Invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(t, newFixture(t), http.MethodPut, tt.body)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, "error", body.Status)
			assert.Nil(t, body.Data)

			var message string
			require.NoError(t, json.Unmarshal(body.Error, &message))
			assert.Equal(t, tt.wantError, message)
		})
	}
}
