package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterIssuesBearerToken(t *testing.T) {
	a := newTestAPI(t)

	w := doJSON(t, a, http.MethodPost, "/api/auth/register", gin.H{
		"name":                  "Jane Doe",
		"email":                 "jane@example.com",
		"password":              "secret-pass",
		"password_confirmation": "secret-pass",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := dataOf(t, w)
	assert.Equal(t, "Bearer", data["token_type"])
	assert.NotEmpty(t, data["token"])

	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", user["email"])
	assert.NotNil(t, user["email_verified_at"], "registrations are live immediately")

	// Secrets never serialize
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "remember_token")

	token := data["token"].(string)
	me := doJSON(t, a, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "jane@example.com", dataOf(t, me)["email"])
}

func TestRegisterValidationErrors(t *testing.T) {
	a := newTestAPI(t)

	w := doJSON(t, a, http.MethodPost, "/api/auth/register", gin.H{
		"name":                  "Jane",
		"email":                 "not-an-email",
		"password":              "short",
		"password_confirmation": "short",
	}, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := envelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "Jane", "jane@example.com", "secret-pass")

	w := doJSON(t, a, http.MethodPost, "/api/auth/register", gin.H{
		"name":                  "Impostor",
		"email":                 "jane@example.com",
		"password":              "other-pass",
		"password_confirmation": "other-pass",
	}, "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	errs, ok := envelope(t, w)["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "email")
}

func TestLoginFailurePayloadIsUniform(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "Jane", "jane@example.com", "secret-pass")

	wrongPassword := doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "wrong-pass",
	}, "")
	unknownEmail := doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "secret-pass",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)

	// Byte-identical bodies, nothing to enumerate accounts with
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Contains(t, wrongPassword.Body.String(), "Invalid credentials")
}

func TestLoginIssuesFreshToken(t *testing.T) {
	a := newTestAPI(t)
	first := registerUser(t, a, "Jane", "jane@example.com", "secret-pass")

	w := doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "secret-pass",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	second, ok := dataOf(t, w)["token"].(string)
	require.True(t, ok)
	assert.NotEqual(t, first, second)

	// Both devices stay signed in
	assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/api/auth/me", nil, first).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/api/auth/me", nil, second).Code)
}

func TestLogoutRevokesOnlyPresentedToken(t *testing.T) {
	a := newTestAPI(t)
	phone := registerUser(t, a, "Jane", "jane@example.com", "secret-pass")

	login := doJSON(t, a, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "jane@example.com",
		"password": "secret-pass",
	}, "")
	require.Equal(t, http.StatusOK, login.Code)
	laptop := dataOf(t, login)["token"].(string)

	out := doJSON(t, a, http.MethodPost, "/api/auth/logout", nil, phone)
	require.Equal(t, http.StatusOK, out.Code)

	assert.Equal(t, http.StatusUnauthorized, doJSON(t, a, http.MethodGet, "/api/auth/me", nil, phone).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/api/auth/me", nil, laptop).Code)
}

func TestRefreshTokenAddsCredential(t *testing.T) {
	a := newTestAPI(t)
	old := registerUser(t, a, "Jane", "jane@example.com", "secret-pass")

	w := doJSON(t, a, http.MethodPost, "/api/auth/refresh-token", nil, old)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	fresh, ok := dataOf(t, w)["token"].(string)
	require.True(t, ok)
	assert.NotEqual(t, old, fresh)

	assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/api/auth/me", nil, fresh).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, a, http.MethodGet, "/api/auth/me", nil, old).Code)
}

func TestProtectedRoutesRejectMissingOrBogusToken(t *testing.T) {
	a := newTestAPI(t)

	w := doJSON(t, a, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthenticated")

	w = doJSON(t, a, http.MethodGet, "/api/auth/me", nil, "definitely-not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
