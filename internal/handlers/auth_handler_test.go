package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/middleware"
)

func TestLoginIssuesSessionCookie(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice", "Alice", "A")

	w := ts.postForm("/login", nil, url.Values{
		"username": {"alice"},
		"password": {"abc"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var token string
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			token = ck.Value
		}
	}
	require.NotEmpty(t, token, "login must set the session cookie")

	claims, err := ts.sessions.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice", "Alice", "A")

	w := ts.postForm("/login", nil, url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a correct username and password")

	for _, ck := range w.Result().Cookies() {
		assert.NotEqual(t, middleware.SessionCookie, ck.Name, "failed login must not set a session")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")

	w := ts.postForm("/logout", ts.sessionCookie(t, alice), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cleared := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
