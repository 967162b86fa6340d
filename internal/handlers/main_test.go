package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/auth"
	"taskmanager/internal/handlers"
	"taskmanager/internal/middleware"
	"taskmanager/internal/models"
	"taskmanager/internal/pdf"
	"taskmanager/internal/repositories/inmem"
	"taskmanager/internal/routes"
	"taskmanager/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	store    *inmem.Store
	sessions *auth.Sessions
	users    services.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := inmem.NewStore()
	sessions := auth.NewSessions("test-secret", time.Hour)

	userService := services.NewUserService(store.Users())
	statusService := services.NewStatusService(store.Statuses())
	labelService := services.NewLabelService(store.Labels())
	taskService := services.NewTaskService(store.Tasks(), store.Users(), nil)

	router := gin.New()
	router.Use(middleware.Identify(sessions))
	router.LoadHTMLGlob("../../web/templates/*.html")

	routes.SetupRoutes(
		router,
		handlers.NewAuthHandler(userService, sessions),
		handlers.NewUserHandler(userService, store.Users()),
		handlers.NewStatusHandler(statusService, store.Statuses()),
		handlers.NewLabelHandler(labelService, store.Labels()),
		handlers.NewTaskHandler(taskService, store.Tasks(), store.Statuses(), store.Users(), store.Labels(), pdf.NewReportGenerator()),
	)

	return &testServer{router: router, store: store, sessions: sessions, users: userService}
}

// register creates a user straight through the service and returns it.
func (ts *testServer) register(t *testing.T, username, first, last string) *models.User {
	t.Helper()
	user := &models.User{Username: username, FirstName: first, LastName: last}
	require.NoError(t, ts.users.Register(context.Background(), user, "abc"))
	return user
}

// sessionCookie mints a valid session for the given user.
func (ts *testServer) sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, err := ts.sessions.Issue(user.ID, user.Username)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

func (ts *testServer) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) postForm(path string, cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}
