package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestSecret(t *testing.T) {
	t.Helper()
	viper.Set("jwt.secret", "test-secret-test-secret")
}

func TestSignAndParseToken(t *testing.T) {
	setTestSecret(t)

	raw, err := SignToken("tok-1", "user-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	tokenID, userID, err := ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tokenID)
	assert.Equal(t, "user-1", userID)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	setTestSecret(t)

	raw, err := SignToken("tok-1", "user-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	// Flip a character in the payload segment
	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)

	_, _, err = ParseToken(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	setTestSecret(t)

	raw, err := SignToken("tok-1", "user-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	viper.Set("jwt.secret", "another-secret-entirely")
	defer setTestSecret(t)

	_, _, err = ParseToken(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	setTestSecret(t)

	raw, err := SignToken("tok-1", "user-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, _, err = ParseToken(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenRejectsUnsignedAlg(t *testing.T) {
	setTestSecret(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"jti":     "tok-1",
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = ParseToken(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenRejectsMissingClaims(t *testing.T) {
	setTestSecret(t)

	noJTI := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	raw, err := noJTI.SignedString([]byte(viper.GetString("jwt.secret")))
	require.NoError(t, err)

	_, _, err = ParseToken(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, _, err = ParseToken("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
