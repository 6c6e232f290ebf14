package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAPIKey(t *testing.T) {
	key, hash, err := GenerateAPIKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, KeyPrefix))
	assert.Len(t, key, len(KeyPrefix)+64)
	assert.Len(t, hash, 64)
	assert.Equal(t, HashKey(key), hash)

	other, _, err := GenerateAPIKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestValidateKey(t *testing.T) {
	key, hash, err := GenerateAPIKey()
	require.NoError(t, err)

	assert.True(t, ValidateKey(key, hash))
	assert.False(t, ValidateKey(key+"x", hash))
	assert.False(t, ValidateKey(key, ""))
	assert.False(t, ValidateKey("", hash))
}
