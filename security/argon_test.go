package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	a := New()

	hash, err := a.GenerateFromPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := a.VerifyPasswd("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaltsAreUnique(t *testing.T) {
	a := New()

	first, err := a.GenerateFromPassword("same password")
	require.NoError(t, err)
	second, err := a.GenerateFromPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	a := New()

	for _, bad := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=1,p=4$not-base64!$also-not",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdHNhbHQ$a2V5a2V5",
		"$bcrypt$whatever",
	} {
		ok, err := a.VerifyPasswd("anything", bad)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrHashMalformed)
	}
}

func TestVerifyHonoursStoredParameters(t *testing.T) {
	// A hash written under lighter settings must keep verifying after
	// the defaults change
	old := &ArgonHash{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	hash, err := old.GenerateFromPassword("correct horse battery staple")
	require.NoError(t, err)

	ok, err := New().VerifyPasswd("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}
