package service

import (
	"testing"
	"time"

	"newshub/news-api/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndResolveSession(t *testing.T) {
	db := testDB(t)
	user := mustRegister(t, db, "Jane", "jane@example.com", "secret-pass")

	session, err := CreateSession(db, user, false)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.CSRFToken)

	got, resolved, err := ResolveSession(db, session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, session.CSRFToken, resolved.CSRFToken)
}

func TestSessionIDsAreNeverReused(t *testing.T) {
	db := testDB(t)
	user := mustRegister(t, db, "Jane", "jane@example.com", "secret-pass")

	first, err := CreateSession(db, user, false)
	require.NoError(t, err)
	second, err := CreateSession(db, user, false)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.CSRFToken, second.CSRFToken)
}

func TestRememberExtendsSessionLifetime(t *testing.T) {
	db := testDB(t)
	user := mustRegister(t, db, "Jane", "jane@example.com", "secret-pass")

	short, err := CreateSession(db, user, false)
	require.NoError(t, err)
	long, err := CreateSession(db, user, true)
	require.NoError(t, err)

	assert.True(t, long.ExpiresAt.After(short.ExpiresAt))
}

func TestResolveSessionRejectsExpired(t *testing.T) {
	db := testDB(t)
	user := mustRegister(t, db, "Jane", "jane@example.com", "secret-pass")

	stale := model.Session{
		ID:        gonanoid.Must(32),
		UserID:    user.ID,
		CSRFToken: gonanoid.Must(32),
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&stale).Error)

	_, _, err := ResolveSession(db, stale.ID)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The expired row is dropped on the spot
	var count int64
	require.NoError(t, db.Model(model.Session{}).Where("id = ?", stale.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDestroySession(t *testing.T) {
	db := testDB(t)
	user := mustRegister(t, db, "Jane", "jane@example.com", "secret-pass")

	session, err := CreateSession(db, user, false)
	require.NoError(t, err)

	require.NoError(t, DestroySession(db, session.ID))

	_, _, err = ResolveSession(db, session.ID)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDestroyAllSessions(t *testing.T) {
	db := testDB(t)
	user := mustRegister(t, db, "Jane", "jane@example.com", "secret-pass")
	other := mustRegister(t, db, "Bob", "bob@example.com", "secret-pass")

	a, err := CreateSession(db, user, false)
	require.NoError(t, err)
	b, err := CreateSession(db, user, true)
	require.NoError(t, err)
	keep, err := CreateSession(db, other, false)
	require.NoError(t, err)

	require.NoError(t, DestroyAllSessions(db, user.ID))

	_, _, err = ResolveSession(db, a.ID)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = ResolveSession(db, b.ID)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Other users stay logged in
	_, _, err = ResolveSession(db, keep.ID)
	assert.NoError(t, err)
}
