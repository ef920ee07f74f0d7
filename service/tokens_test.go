package service

import (
	"testing"
	"time"

	"newshub/news-api/model"
	"newshub/news-api/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndResolveToken(t *testing.T) {
	db := testDB(t)
	user := mustRegister(t, db, "Jane", "jane@example.com", "secret-pass")

	raw, err := IssueToken(db, user, "api-token")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	got, token, err := ResolveToken(db, raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.ID, token.UserID)
	assert.NotNil(t, token.LastUsedAt)
}

func TestRevokeTokenIsPerToken(t *testing.T) {
	db := testDB(t)
	user := mustRegister(t, db, "Jane", "jane@example.com", "secret-pass")

	first, err := IssueToken(db, user, "phone")
	require.NoError(t, err)
	second, err := IssueToken(db, user, "laptop")
	require.NoError(t, err)

	_, firstToken, err := ResolveToken(db, first)
	require.NoError(t, err)

	require.NoError(t, RevokeToken(db, firstToken.ID))

	_, _, err = ResolveToken(db, first)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "revoked token must stop working before its signature expires")

	// The other device is untouched
	_, _, err = ResolveToken(db, second)
	assert.NoError(t, err)
}

func TestRevokeAllTokens(t *testing.T) {
	db := testDB(t)
	user := mustRegister(t, db, "Jane", "jane@example.com", "secret-pass")

	first, err := IssueToken(db, user, "phone")
	require.NoError(t, err)
	second, err := IssueToken(db, user, "laptop")
	require.NoError(t, err)

	require.NoError(t, RevokeAllTokens(db, user.ID))

	_, _, err = ResolveToken(db, first)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = ResolveToken(db, second)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveTokenRejectsGarbage(t *testing.T) {
	db := testDB(t)

	_, _, err := ResolveToken(db, "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = ResolveToken(db, "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveTokenRejectsOrphanedSignature(t *testing.T) {
	db := testDB(t)
	user := mustRegister(t, db, "Jane", "jane@example.com", "secret-pass")

	// A validly signed token whose id has no backing row is dead
	raw, err := security.SignToken(gonanoid.Must(24), user.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, _, err = ResolveToken(db, raw)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveTokenRejectsExpiredRow(t *testing.T) {
	db := testDB(t)
	user := mustRegister(t, db, "Jane", "jane@example.com", "secret-pass")

	token := model.AuthToken{
		ID:        gonanoid.Must(24),
		UserID:    user.ID,
		Name:      "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&token).Error)

	raw, err := security.SignToken(token.ID, user.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, _, err = ResolveToken(db, raw)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
