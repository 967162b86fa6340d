package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/models"
)

func TestStatusCRUD(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")
	cookie := ts.sessionCookie(t, alice)

	w := ts.postForm("/statuses/create", cookie, url.Values{"name": {"new"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/statuses", w.Header().Get("Location"))

	statuses, err := ts.store.Statuses().List(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "new", statuses[0].Name)

	// duplicate name re-renders the form without creating a row
	w = ts.postForm("/statuses/create", cookie, url.Values{"name": {"new"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Status with this name already exists")

	statuses, err = ts.store.Statuses().List(ctx)
	require.NoError(t, err)
	assert.Len(t, statuses, 1)

	w = ts.postForm("/statuses/"+formatID(statuses[0].ID)+"/update", cookie, url.Values{"name": {"in progress"}})
	assert.Equal(t, http.StatusFound, w.Code)

	updated, err := ts.store.Statuses().GetByID(ctx, statuses[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "in progress", updated.Name)

	w = ts.postForm("/statuses/"+formatID(statuses[0].ID)+"/delete", cookie, nil)
	assert.Equal(t, http.StatusFound, w.Code)

	statuses, err = ts.store.Statuses().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestStatusDeleteBlockedWhileInUse(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")
	status := &models.Status{Name: "new"}
	require.NoError(t, ts.store.Statuses().Create(ctx, status))
	require.NoError(t, ts.store.Tasks().Store(ctx, &models.Task{
		Name: "T1", StatusID: status.ID, CreatorID: alice.ID,
	}))

	w := ts.postForm("/statuses/"+formatID(status.ID)+"/delete", ts.sessionCookie(t, alice), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/statuses", w.Header().Get("Location"))

	_, err := ts.store.Statuses().GetByID(ctx, status.ID)
	assert.NoError(t, err, "a status referenced by tasks must survive")
}

func TestLabelDeleteBlockedWhileInUse(t *testing.T) {
	ctx := context.Background()
	ts := newTestServer(t)
	alice := ts.register(t, "alice", "Alice", "A")
	status := &models.Status{Name: "new"}
	require.NoError(t, ts.store.Statuses().Create(ctx, status))
	label := &models.Label{Name: "bug"}
	require.NoError(t, ts.store.Labels().Create(ctx, label))
	require.NoError(t, ts.store.Tasks().Store(ctx, &models.Task{
		Name: "T1", StatusID: status.ID, CreatorID: alice.ID, LabelIDs: []int64{label.ID},
	}))

	cookie := ts.sessionCookie(t, alice)
	w := ts.postForm("/labels/"+formatID(label.ID)+"/delete", cookie, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/labels", w.Header().Get("Location"))

	_, err := ts.store.Labels().GetByID(ctx, label.ID)
	assert.NoError(t, err, "a label attached to tasks must survive")

	// once the task is gone the label can go too
	tasks, err := ts.store.Tasks().FindAll(ctx, models.TaskFilter{})
	require.NoError(t, err)
	require.NoError(t, ts.store.Tasks().Delete(ctx, tasks[0].ID))

	w = ts.postForm("/labels/"+formatID(label.ID)+"/delete", cookie, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	_, err = ts.store.Labels().GetByID(ctx, label.ID)
	assert.Error(t, err)
}
