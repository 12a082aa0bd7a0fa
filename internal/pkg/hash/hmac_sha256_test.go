package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashVerify(t *testing.T) {
	h := NewHMACSHA256("test-secret")

	digest, err := h.Hash("482913")
	require.NoError(t, err)
	assert.Len(t, digest, 64) // hex-encoded SHA-256

	assert.True(t, h.Verify(string(digest), "482913"))
	assert.False(t, h.Verify(string(digest), "482914"))
	assert.False(t, h.Verify("", "482913"))
}

func TestDifferentSecretsDisagree(t *testing.T) {
	h1 := NewHMACSHA256("secret-one")
	h2 := NewHMACSHA256("secret-two")

	digest, err := h1.Hash("482913")
	require.NoError(t, err)

	assert.False(t, h2.Verify(string(digest), "482913"))
}
