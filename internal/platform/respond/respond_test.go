// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/eachday/internal/platform/apperr"
	"github.com/taibuivan/eachday/internal/platform/respond"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"name": "joe"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

	body := decode(t, recorder)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, map[string]any{"name": "joe"}, body["data"])
	assert.NotContains(t, body, "message")
	assert.NotContains(t, body, "auth_token")
}

func TestToken(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Token(recorder, http.StatusCreated, "Successfully registered.", "abc")

	assert.Equal(t, http.StatusCreated, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Successfully registered.", body["message"])
	assert.Equal(t, "abc", body["auth_token"])
	assert.NotContains(t, body, "data")
}

func TestCSV(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.CSV(recorder, "eachday-export.csv", []byte("Date,Rating,Notes\r\n"))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/csv; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=eachday-export.csv", recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "Date,Rating,Notes\r\n", recorder.Body.String())
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  any
	}{
		{
			name:       "message",
			err:        apperr.NotFound("Invalid entry id"),
			wantStatus: http.StatusNotFound,
			wantError:  "Invalid entry id",
		},
		{
			name: "fields",
			err: apperr.ValidationError("Validation failed", map[string][]string{
				"rating": {"Rating must be between 1 and 10"},
			}),
			wantStatus: http.StatusBadRequest,
			wantError:  map[string]any{"rating": []any{"Rating must be between 1 and 10"}},
		},
		{
			name:       "unknown",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			body := decode(t, recorder)
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}
