// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/eachday/internal/platform/migration"
)

func TestToPgx5URL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/eachday", "pgx5://u:p@db:5432/eachday"},
		{"postgresql://u:p@db/eachday?sslmode=disable", "pgx5://u:p@db/eachday?sslmode=disable"},
		{"pgx5://u:p@db/eachday", "pgx5://u:p@db/eachday"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ToPgx5URL(tt.in))
		})
	}
}
