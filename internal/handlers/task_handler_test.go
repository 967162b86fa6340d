package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/models"
)

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func TestTasksRequireLogin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/tasks", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestTaskCreateDefaultsExecutor(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")
	status := &models.Status{Name: "new"}
	require.NoError(t, ts.store.Statuses().Create(ctx, status))
	cookie := ts.sessionCookie(t, alice)

	w := ts.postForm("/tasks/create", cookie, url.Values{
		"name":   {"Fix login"},
		"status": {formatID(status.ID)},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tasks", w.Header().Get("Location"))

	tasks, err := ts.store.Tasks().FindAll(ctx, models.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, alice.ID, tasks[0].CreatorID)
	require.NotNil(t, tasks[0].ExecutorID)
	assert.Equal(t, alice.ID, *tasks[0].ExecutorID)
}

func TestTaskCreateInvalidFormRerenders(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")
	cookie := ts.sessionCookie(t, alice)

	// no status selected
	w := ts.postForm("/tasks/create", cookie, url.Values{"name": {"Fix login"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "This field is required")

	tasks, err := ts.store.Tasks().FindAll(ctx, models.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks, "invalid submit must not create a task")
}

func TestTaskDuplicateNameRerenders(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")
	status := &models.Status{Name: "new"}
	require.NoError(t, ts.store.Statuses().Create(ctx, status))
	cookie := ts.sessionCookie(t, alice)

	form := url.Values{"name": {"Fix login"}, "status": {formatID(status.ID)}}
	w := ts.postForm("/tasks/create", cookie, form)
	require.Equal(t, http.StatusFound, w.Code)

	w = ts.postForm("/tasks/create", cookie, form)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Task with this name already exists")

	tasks, err := ts.store.Tasks().FindAll(ctx, models.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1, "duplicate submit must not create a second task")
}

func TestTaskListFilters(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")
	bob := ts.register(t, "bob", "Bob", "B")
	open := &models.Status{Name: "open"}
	done := &models.Status{Name: "done"}
	require.NoError(t, ts.store.Statuses().Create(ctx, open))
	require.NoError(t, ts.store.Statuses().Create(ctx, done))

	require.NoError(t, ts.store.Tasks().Store(ctx, &models.Task{
		Name: "Alice open", StatusID: open.ID, CreatorID: alice.ID,
	}))
	require.NoError(t, ts.store.Tasks().Store(ctx, &models.Task{
		Name: "Bob done", StatusID: done.ID, CreatorID: bob.ID, ExecutorID: &alice.ID,
	}))

	cookie := ts.sessionCookie(t, alice)

	w := ts.get("/tasks", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice open")
	assert.Contains(t, w.Body.String(), "Bob done")

	w = ts.get("/tasks?status="+formatID(open.ID), cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice open")
	assert.NotContains(t, w.Body.String(), "Bob done")

	// my_tasks narrows to tasks created by the signed-in user
	w = ts.get("/tasks?my_tasks=on", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice open")
	assert.NotContains(t, w.Body.String(), "Bob done")

	w = ts.get("/tasks?executor="+formatID(alice.ID), cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Alice open")
	assert.Contains(t, w.Body.String(), "Bob done")
}

func TestTaskDeleteOnlyByCreator(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")
	bob := ts.register(t, "bob", "Bob", "B")
	status := &models.Status{Name: "new"}
	require.NoError(t, ts.store.Statuses().Create(ctx, status))

	task := &models.Task{Name: "Fix login", StatusID: status.ID, CreatorID: alice.ID}
	require.NoError(t, ts.store.Tasks().Store(ctx, task))

	w := ts.postForm("/tasks/"+formatID(task.ID)+"/delete", ts.sessionCookie(t, bob), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/tasks", w.Header().Get("Location"))

	_, err := ts.store.Tasks().FindByID(ctx, task.ID)
	require.NoError(t, err, "a non-creator must not delete the task")

	w = ts.postForm("/tasks/"+formatID(task.ID)+"/delete", ts.sessionCookie(t, alice), nil)
	assert.Equal(t, http.StatusFound, w.Code)

	tasks, err := ts.store.Tasks().FindAll(ctx, models.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskExportPDF(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")
	status := &models.Status{Name: "new"}
	require.NoError(t, ts.store.Statuses().Create(ctx, status))
	require.NoError(t, ts.store.Tasks().Store(ctx, &models.Task{
		Name: "Fix login", StatusID: status.ID, CreatorID: alice.ID,
	}))

	w := ts.get("/tasks/export.pdf", ts.sessionCookie(t, alice))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, w.Body.Len() > 0)
}
