// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses. Every
// JSON body carries a "status" of either "success" or "error":
//
//	{"status": "success", "data": {...}, "message": "...", "auth_token": "..."}
//	{"status": "error", "error": "Invalid entry id"}
//	{"status": "error", "error": {"rating": ["Rating must be between 1 and 10"]}}
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/eachday/internal/platform/apperr"
	"github.com/taibuivan/eachday/internal/platform/constants"
	"github.com/taibuivan/eachday/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for successful responses.
type SuccessEnvelope struct {
	Status    string `json:"status"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	AuthToken string `json:"auth_token,omitempty"`
}

// ErrorEnvelope is the JSON envelope for error responses.
//
// Error holds either a message string or a field name to messages map.
type ErrorEnvelope struct {
	Status string `json:"status"`
	Error  any    `json:"error"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the success envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Status: constants.StatusSuccess, Data: data})
}

// Created writes a 201 Created response with data wrapped in the success envelope.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Status: constants.StatusSuccess, Data: data})
}

// Message writes a success envelope carrying only a human-readable message.
func Message(writer http.ResponseWriter, statusCode int, message string) {
	JSON(writer, statusCode, SuccessEnvelope{Status: constants.StatusSuccess, Message: message})
}

// Token writes a success envelope carrying a message and a fresh auth token.
func Token(writer http.ResponseWriter, statusCode int, message, token string) {
	JSON(writer, statusCode, SuccessEnvelope{
		Status:    constants.StatusSuccess,
		Message:   message,
		AuthToken: token,
	})
}

// CSV writes a downloadable CSV attachment.
func CSV(writer http.ResponseWriter, filename string, body []byte) {
	header := writer.Header()
	header.Set(constants.HeaderContentType, constants.ContentTypeCSV)
	header.Set(constants.HeaderDisposition, "attachment; filename="+filename)
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(body)
}

// Error converts any Go error into the error envelope.
//
// Unknown errors are logged with their cause and reported as a generic 500.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	appError := apperr.As(err)
	if appError == nil {
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	var body any = appError.Message
	if len(appError.Fields) > 0 {
		body = appError.Fields
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{Status: constants.StatusError, Error: body})
}
