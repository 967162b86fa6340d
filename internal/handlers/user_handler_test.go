package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/middleware"
	"taskmanager/internal/models"
)

func TestRegisterRedirectsToLogin(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	w := ts.postForm("/users/create", nil, url.Values{
		"username":   {"jsmith"},
		"first_name": {"John"},
		"last_name":  {"Smith"},
		"password1":  {"abc"},
		"password2":  {"abc"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	user, err := ts.store.Users().GetByUsername(ctx, "jsmith")
	require.NoError(t, err)
	assert.Equal(t, "John", user.FirstName)
}

func TestRegisterInvalidRerenders(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)

	w := ts.postForm("/users/create", nil, url.Values{
		"username":   {"jsmith"},
		"first_name": {"John"},
		"last_name":  {"Smith"},
		"password1":  {"ab"},
		"password2":  {"ab"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Password must be at least 3 characters long")

	_, err := ts.store.Users().GetByUsername(ctx, "jsmith")
	assert.Error(t, err, "invalid registration must not create a user")
}

func TestUserUpdateForbiddenForOthers(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	ts.register(t, "alice", "Alice", "A")
	bob := ts.register(t, "bob", "Bob", "B")
	alice, err := ts.store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)

	w := ts.postForm("/users/"+formatID(alice.ID)+"/update", ts.sessionCookie(t, bob), url.Values{
		"username":   {"hacked"},
		"first_name": {"H"},
		"last_name":  {"H"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users", w.Header().Get("Location"))

	stored, err := ts.store.Users().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username, "foreign update must not change the row")
}

func TestUserUpdateSelf(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")

	w := ts.postForm("/users/"+formatID(alice.ID)+"/update", ts.sessionCookie(t, alice), url.Values{
		"username":   {"alice"},
		"first_name": {"Alicia"},
		"last_name":  {"A"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users", w.Header().Get("Location"))

	stored, err := ts.store.Users().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", stored.FirstName)
}

func TestUserPasswordChangeEndsSession(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")

	w := ts.postForm("/users/"+formatID(alice.ID)+"/update", ts.sessionCookie(t, alice), url.Values{
		"username":   {"alice"},
		"first_name": {"Alice"},
		"last_name":  {"A"},
		"password1":  {"newpass"},
		"password2":  {"newpass"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cleared := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "password change must drop the session cookie")
}

func TestUserDeleteForbiddenForOthers(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")
	bob := ts.register(t, "bob", "Bob", "B")

	w := ts.postForm("/users/"+formatID(alice.ID)+"/delete", ts.sessionCookie(t, bob), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users", w.Header().Get("Location"))

	_, err := ts.store.Users().GetByID(ctx, alice.ID)
	assert.NoError(t, err, "foreign delete must leave the row")
}

func TestUserDeleteBlockedWhileInUse(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")
	status := &models.Status{Name: "new"}
	require.NoError(t, ts.store.Statuses().Create(ctx, status))
	require.NoError(t, ts.store.Tasks().Store(ctx, &models.Task{
		Name: "T1", StatusID: status.ID, CreatorID: alice.ID,
	}))

	w := ts.postForm("/users/"+formatID(alice.ID)+"/delete", ts.sessionCookie(t, alice), nil)
	assert.Equal(t, http.StatusFound, w.Code)

	_, err := ts.store.Users().GetByID(ctx, alice.ID)
	assert.NoError(t, err, "a user referenced by tasks must survive")
}

func TestUserSelfDeleteClearsSession(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")

	w := ts.postForm("/users/"+formatID(alice.ID)+"/delete", ts.sessionCookie(t, alice), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users", w.Header().Get("Location"))

	_, err := ts.store.Users().GetByID(ctx, alice.ID)
	assert.Error(t, err)

	cleared := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "self-deletion must drop the session cookie")
}

func TestUserListIsPublic(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice", "Alice", "A")

	w := ts.get("/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice A")
}
