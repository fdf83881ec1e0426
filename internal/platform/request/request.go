// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/eachday/internal/platform/apperr"
	"github.com/taibuivan/eachday/internal/platform/constants"
	"github.com/taibuivan/eachday/internal/platform/ctxutil"
	"github.com/taibuivan/eachday/internal/platform/sec"
	"github.com/taibuivan/eachday/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: a field validation error when a JSON value has the wrong type,
    validate.ErrInvalidJSON for any other decoding failure, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	body := http.MaxBytesReader(nil, request.Body, constants.MaxRequestBodyBytes)

	err := json.NewDecoder(body).Decode(target)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return validate.RequiredError(typeErr.Field, typeMessage(typeErr.Type))
	}

	return validate.ErrInvalidJSON
}

/*
DecodeObject reads a JSON object body and keeps every member undecoded.

Callers that must tell an absent member from an explicit null (partial
updates) decode from the returned map.
*/
func DecodeObject(request *http.Request) (map[string]json.RawMessage, error) {
	body := http.MaxBytesReader(nil, request.Body, constants.MaxRequestBodyBytes)

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, validate.ErrInvalidJSON
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err != nil || object == nil {
		return nil, validate.ErrInvalidJSON
	}

	return object, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64Param parses a named URL parameter as a base-10 int64.

Returns:
  - int64: The parsed value
  - error: apperr.NotFound(notFound) when the parameter is not a valid number
*/
func Int64Param(request *http.Request, name, notFound string) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil {
		return 0, apperr.NotFound(notFound)
	}
	return value, nil
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Please provide an auth token")
	}

	return claims, nil
}

// typeMessage picks the field message for a JSON value of the wrong type.
func typeMessage(target reflect.Type) string {
	for target.Kind() == reflect.Pointer {
		target = target.Elem()
	}

	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return validate.MsgInvalidInt
	case reflect.String:
		return validate.MsgInvalidText
	default:
		return "Invalid value for " + strings.ToLower(target.Kind().String()) + "."
	}
}
