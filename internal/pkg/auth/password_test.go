package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "sup3rSecret", hash)

	assert.True(t, CheckPassword(hash, "sup3rSecret"))
	assert.False(t, CheckPassword(hash, "wrongPassword"))
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	first, err := HashPassword("sup3rSecret")
	require.NoError(t, err)
	second, err := HashPassword("sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
