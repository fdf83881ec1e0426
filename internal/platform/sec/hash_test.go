// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/eachday/internal/platform/sec"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("123456")
	require.NoError(t, err)

	assert.NotEqual(t, "123456", hash)
	assert.True(t, hasher.Check("123456", hash))
	assert.False(t, hasher.Check("invalid password", hash))
}

func TestPasswordHasher_Salted(t *testing.T) {
	hasher := sec.NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("test")
	require.NoError(t, err)
	second, err := hasher.Hash("test")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := sec.NewPasswordHasher(99)

	hash, err := hasher.Hash("x")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestHashToken(t *testing.T) {
	assert.Len(t, sec.HashToken("abc"), 64)
	assert.Equal(t, sec.HashToken("abc"), sec.HashToken("abc"))
	assert.NotEqual(t, sec.HashToken("abc"), sec.HashToken("abd"))
}
