// Copyright (c) 2026 Vidora. All rights reserved.
// Author: minh.vban@gmail.com

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvban/vidora/internal/platform/sec"
)

func TestGenerateCode_LengthAndAlphabet(t *testing.T) {
	code, err := sec.GenerateCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)

	// Ambiguous characters (0, O, 1, I, l) never appear.
	for _, r := range code {
		assert.NotContains(t, "0O1Il", string(r))
	}
}

func TestGenerateCode_RejectsNonPositiveLength(t *testing.T) {
	_, err := sec.GenerateCode(0)
	require.Error(t, err)

	_, err = sec.GenerateCode(-3)
	require.Error(t, err)
}

func TestGenerateCode_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		code, err := sec.GenerateCode(6)
		require.NoError(t, err)
		seen[code] = true
	}
	// 32 draws from a 57^6 space colliding down to one value would mean a
	// broken random source.
	assert.Greater(t, len(seen), 1)
}

func TestHashSecret_RoundTrip(t *testing.T) {
	hash, err := sec.HashSecret("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	assert.True(t, sec.CheckSecret("correct horse battery staple", hash))
	assert.False(t, sec.CheckSecret("wrong password", hash))
	assert.False(t, sec.CheckSecret("correct horse battery staple", "not-a-hash"))
}
