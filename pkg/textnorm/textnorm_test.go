// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/eachday/pkg/textnorm"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "joe", "joe"},
		{"decomposed_accent", "Jose\u0301", "Jos\u00e9"},
		{"surrounding_space", "  Donald   Knuth ", "Donald Knuth"},
		{"line_break", "Donald\nKnuth", "Donald Knuth"},
		{"nul_byte", "jo\x00e", "joe"},
		{"tab_between_words", "Donald\t Knuth", "Donald Knuth"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Line(tt.in))
		})
	}
}

func TestBlock(t *testing.T) {
	assert.Equal(t, "line one\nline two", textnorm.Block("line one\r\nline two"))
	assert.Equal(t, "caf\u00e9\tbar", textnorm.Block("cafe\u0301\tbar\x00"))
	assert.Equal(t, "  padded  ", textnorm.Block("  padded  "))
}
