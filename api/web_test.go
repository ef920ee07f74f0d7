package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"newshub/news-api/middleware"
	"newshub/news-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doForm sends a form-encoded request with optional cookies
func doForm(t *testing.T, a *API, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// webLogin runs the form login and returns the session cookie
func webLogin(t *testing.T, a *API, email, password string) *http.Cookie {
	t.Helper()

	w := doForm(t, a, http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	session := cookieNamed(w, middleware.SessionCookie)
	require.NotNil(t, session)
	require.NotEmpty(t, session.Value)
	return session
}

func TestWebRegisterStartsSession(t *testing.T) {
	a := newTestAPI(t)

	w := doForm(t, a, http.MethodPost, "/register", url.Values{
		"name":                  {"Jane Doe"},
		"email":                 {"jane@example.com"},
		"password":              {"Secret-Pass1"},
		"password_confirmation": {"Secret-Pass1"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	session := cookieNamed(w, middleware.SessionCookie)
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	csrf := cookieNamed(w, CSRFCookie)
	require.NotNil(t, csrf)
	assert.NotEmpty(t, csrf.Value)

	dash := doForm(t, a, http.MethodGet, "/dashboard", nil, session)
	require.Equal(t, http.StatusOK, dash.Code, dash.Body.String())
	assert.Contains(t, dash.Body.String(), "jane@example.com")
}

func TestWebRegisterEnforcesStrongPassword(t *testing.T) {
	a := newTestAPI(t)

	w := doForm(t, a, http.MethodPost, "/register", url.Values{
		"name":                  {"Jane Doe"},
		"email":                 {"jane@example.com"},
		"password":              {"alllowercase"},
		"password_confirmation": {"alllowercase"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	errs, ok := envelope(t, w)["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "password")
}

func TestWebLoginFailurePayloadIsUniform(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "Jane", "jane@example.com", "secret-pass")

	wrongPassword := doForm(t, a, http.MethodPost, "/login", url.Values{
		"email":    {"jane@example.com"},
		"password": {"wrong-pass"},
	})
	unknownEmail := doForm(t, a, http.MethodPost, "/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"secret-pass"},
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestWebLoginRotatesSessionID(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "Jane", "jane@example.com", "secret-pass")

	first := webLogin(t, a, "jane@example.com", "secret-pass")
	second := webLogin(t, a, "jane@example.com", "secret-pass")

	assert.NotEqual(t, first.Value, second.Value, "a login must never reuse a session id")
}

func TestWebLoginDiscardsPresentedSession(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "Jane", "jane@example.com", "secret-pass")

	old := webLogin(t, a, "jane@example.com", "secret-pass")

	// Logging in again while already holding a session kills the old one
	w := doForm(t, a, http.MethodPost, "/login", url.Values{
		"email":    {"jane@example.com"},
		"password": {"secret-pass"},
	}, old)
	require.Equal(t, http.StatusSeeOther, w.Code)

	dash := doForm(t, a, http.MethodGet, "/dashboard", nil, old)
	assert.Equal(t, http.StatusSeeOther, dash.Code)
	assert.Equal(t, "/login", dash.Header().Get("Location"))
}

func TestWebLogoutDestroysSession(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "Jane", "jane@example.com", "secret-pass")

	session := webLogin(t, a, "jane@example.com", "secret-pass")

	w := doForm(t, a, http.MethodPost, "/logout", nil, session)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cleared := cookieNamed(w, middleware.SessionCookie)
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0, "session cookie must be expired")

	// The server-side record is gone, not just the cookie
	var count int64
	require.NoError(t, a.DB.Model(model.Session{}).Where("id = ?", session.Value).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	dash := doForm(t, a, http.MethodGet, "/dashboard", nil, session)
	assert.Equal(t, http.StatusSeeOther, dash.Code)
}

func TestDashboardRequiresSession(t *testing.T) {
	a := newTestAPI(t)

	w := doForm(t, a, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestForgotPasswordResponseIsUniform(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "Jane", "jane@example.com", "secret-pass")

	known := doForm(t, a, http.MethodPost, "/forgot-password", url.Values{
		"email": {"jane@example.com"},
	})
	unknown := doForm(t, a, http.MethodPost, "/forgot-password", url.Values{
		"email": {"nobody@example.com"},
	})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestWebResetPasswordFlow(t *testing.T) {
	a := newTestAPI(t)
	registerUser(t, a, "Jane", "jane@example.com", "OldSecret1")

	w := doForm(t, a, http.MethodPost, "/forgot-password", url.Values{
		"email": {"jane@example.com"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var reset model.PasswordResetToken
	require.NoError(t, a.DB.Where("email = ?", "jane@example.com").First(&reset).Error)

	// The emailed link resolves and echoes the token back
	form := doForm(t, a, http.MethodGet, "/reset-password/"+reset.Token, nil)
	require.Equal(t, http.StatusOK, form.Code)
	assert.Equal(t, reset.Token, dataOf(t, form)["token"])

	w = doForm(t, a, http.MethodPost, "/reset-password", url.Values{
		"token":                 {reset.Token},
		"email":                 {"jane@example.com"},
		"password":              {"NewSecret1"},
		"password_confirmation": {"NewSecret1"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/login", w.Header().Get("Location"))

	webLogin(t, a, "jane@example.com", "NewSecret1")

	// Replaying the token fails
	w = doForm(t, a, http.MethodPost, "/reset-password", url.Values{
		"token":                 {reset.Token},
		"email":                 {"jane@example.com"},
		"password":              {"OtherSecret1"},
		"password_confirmation": {"OtherSecret1"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
