package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateRoomCode()
		require.NoError(t, err)
		assert.Len(t, code, CodeLength)
		assert.True(t, IsValidRoomCode(code), "generated code %q must validate", code)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(CodeCharset, c))
		}
		seen[code] = true
	}
	// 100 draws from a 32^6 space should not collide into a handful.
	assert.Greater(t, len(seen), 90)
}

func TestIsValidRoomCode(t *testing.T) {
	assert.True(t, IsValidRoomCode("ABC234"))
	assert.False(t, IsValidRoomCode("ABC23"), "too short")
	assert.False(t, IsValidRoomCode("ABC2345"), "too long")
	assert.False(t, IsValidRoomCode("ABC10O"), "lookalike characters excluded")
	assert.False(t, IsValidRoomCode("abc234"), "lowercase rejected")
}
