package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMD5HasherMatchesLegacyDigest(t *testing.T) {
	h, err := NewHasher(SchemeMD5, 0)
	require.NoError(t, err)

	digest, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	assert.Len(t, digest, 32)
	assert.True(t, h.Verify(digest, "Passw0rd!"))
	assert.False(t, h.Verify(digest, "passw0rd!"))
}

func TestBcryptHasherVerifiesBothSchemes(t *testing.T) {
	legacy, err := NewHasher(SchemeMD5, 0)
	require.NoError(t, err)
	h, err := NewHasher(SchemeBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	digest, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	assert.True(t, h.Verify(digest, "Passw0rd!"))
	assert.False(t, h.Verify(digest, "nope"))

	old, err := legacy.Hash("Old.Pass1")
	require.NoError(t, err)
	assert.True(t, h.Verify(old, "Old.Pass1"))
}

func TestNewHasherRejectsUnknownScheme(t *testing.T) {
	_, err := NewHasher("sha1", 0)
	assert.Error(t, err)
	_, err = NewHasher(SchemeBcrypt, 99)
	assert.Error(t, err)
}
