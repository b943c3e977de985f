package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	hash, err := testHasher.Hash("password123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=64,t=1,p=1$"))

	ok, err := testHasher.Verify("password123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = testHasher.Verify("password124", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_SaltsEachHash(t *testing.T) {
	a, err := testHasher.Hash("same")
	require.NoError(t, err)
	b, err := testHasher.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestArgon2Hasher_VerifyUsesEmbeddedParams(t *testing.T) {
	other := Argon2Hasher{Time: 2, MemoryKiB: 128, Threads: 2}
	hash, err := other.Hash("pw")
	require.NoError(t, err)

	ok, err := testHasher.Verify("pw", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2Hasher_RejectsMalformed(t *testing.T) {
	for _, enc := range []string{"", "plain", "$bcrypt$x$y$z$w", "$argon2id$v=19$m=x$salt$hash"} {
		_, err := testHasher.Verify("pw", enc)
		assert.ErrorIs(t, err, ErrInvalidHash, "encoded %q", enc)
	}

	_, err := testHasher.Verify("pw", "$argon2id$v=18$m=64,t=1,p=1$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}
