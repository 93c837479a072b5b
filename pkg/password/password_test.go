package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("open-sesame")
	require.NoError(t, err)
	assert.NotEqual(t, "open-sesame", hash)

	assert.True(t, Verify("open-sesame", hash))
	assert.False(t, Verify("wrong", hash))
	assert.False(t, Verify("open-sesame", "not-a-bcrypt-hash"))
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("open-sesame")
	require.NoError(t, err)
	b, err := Hash("open-sesame")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
