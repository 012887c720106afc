package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("admin123")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "admin123"))
	assert.Error(t, h.Compare(hash, "wrong"))

	_, err = h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestResolveHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	precomputed, err := h.Hash("secret")
	require.NoError(t, err)

	t.Run("precomputed hash wins", func(t *testing.T) {
		got, err := ResolveHash(h, "ignored", precomputed)
		require.NoError(t, err)
		assert.Equal(t, precomputed, got)
	})

	t.Run("plaintext is hashed", func(t *testing.T) {
		got, err := ResolveHash(h, "admin123", "")
		require.NoError(t, err)
		assert.NoError(t, h.Compare(got, "admin123"))
	})

	t.Run("nothing configured", func(t *testing.T) {
		got, err := ResolveHash(h, "", "")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("malformed hash", func(t *testing.T) {
		_, err := ResolveHash(h, "", "not-a-hash")
		assert.ErrorIs(t, err, ErrMalformedHash)
	})
}
