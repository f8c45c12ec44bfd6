package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePublicID(t *testing.T) {
	pattern := regexp.MustCompile(`^FOTO-[A-Z0-9]{9}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := GeneratePublicID(9)
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestGeneratePublicID_InvalidLength(t *testing.T) {
	_, err := GeneratePublicID(0)
	assert.Error(t, err)
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64) // hex doubles the byte count
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("abc")
	b := HashToken("abc")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashToken("abd"))
}
