// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/eachday/internal/journal/entry"
	"github.com/taibuivan/eachday/internal/platform/apperr"
	"github.com/taibuivan/eachday/internal/platform/validate"
)

func TestParsePatch_Presence(t *testing.T) {
	patch := patchOf(t, `{"rating":null,"notes":"hi"}`)

	assert.False(t, patch.Has(entry.FieldDate))
	assert.Nil(t, patch.Date)

	assert.True(t, patch.Has(entry.FieldRating))
	assert.Nil(t, patch.Rating)

	assert.True(t, patch.Has(entry.FieldNotes))
	require.NotNil(t, patch.Notes)
	assert.Equal(t, "hi", *patch.Notes)
}

func TestParsePatch_WrongTypes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields map[string][]string
	}{
		{"rating_as_string", `{"rating":"five"}`, map[string][]string{"rating": {validate.MsgInvalidInt}}},
		{"rating_fractional", `{"rating":4.5}`, map[string][]string{"rating": {validate.MsgInvalidInt}}},
		{"date_as_number", `{"date":20170101}`, map[string][]string{"date": {validate.MsgInvalidDate}}},
		{"notes_as_object", `{"notes":{"a":1}}`, map[string][]string{"notes": {validate.MsgInvalidText}}},
		{
			"several",
			`{"rating":true,"notes":[1]}`,
			map[string][]string{"rating": {validate.MsgInvalidInt}, "notes": {validate.MsgInvalidText}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var object map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(tt.body), &object))

			_, err := entry.ParsePatch(object)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantFields, appErr.Fields)
		})
	}
}
