package tasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantara-io/gworkspace/auth"
	"github.com/mantara-io/gworkspace/transport"
)

func testClient() *auth.Client {
	return auth.NewClient(auth.Credentials{ClientID: "id"},
		auth.AccessToken{Token: "t", ExpiresIn: 3600, RefreshToken: "r"}, false)
}

func TestTaskListsBuilderRequest(t *testing.T) {
	b := NewService(testClient()).TaskLists().
		MaxResults(20).
		PageToken("next")

	assert.Equal(t, http.MethodGet, b.req.Method)
	assert.Equal(t, "https://tasks.googleapis.com/tasks/v1/users/@me/lists", b.req.URL)
	assert.Equal(t, "20", b.req.Params.Get("maxResults"))
	assert.Equal(t, "next", b.req.Params.Get("pageToken"))
}

func TestListBuilderRequest(t *testing.T) {
	min := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	b := NewService(testClient()).List("list-1").
		MaxResults(50).
		CompletedMin(min).
		CompletedMax(max).
		DueMin(min).
		DueMax(max).
		UpdatedMin(min).
		ShowCompleted(true).
		ShowDeleted(false).
		ShowHidden(true).
		ShowAssigned(false)

	assert.Equal(t, http.MethodGet, b.req.Method)
	assert.Equal(t, "https://tasks.googleapis.com/tasks/v1/lists/list-1/tasks", b.req.URL)

	assert.Equal(t, "50", b.req.Params.Get("maxResults"))
	assert.Equal(t, "2025-06-01T00:00:00Z", b.req.Params.Get("completedMin"))
	assert.Equal(t, "2025-06-30T00:00:00Z", b.req.Params.Get("completedMax"))
	assert.Equal(t, "2025-06-01T00:00:00Z", b.req.Params.Get("dueMin"))
	assert.Equal(t, "2025-06-30T00:00:00Z", b.req.Params.Get("dueMax"))
	assert.Equal(t, "2025-06-01T00:00:00Z", b.req.Params.Get("updatedMin"))
	assert.Equal(t, "true", b.req.Params.Get("showCompleted"))
	assert.Equal(t, "false", b.req.Params.Get("showDeleted"))
	assert.Equal(t, "true", b.req.Params.Get("showHidden"))
	assert.Equal(t, "false", b.req.Params.Get("showAssigned"))
}

func TestInsertBuilderPayload(t *testing.T) {
	due := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	b := NewService(testClient()).Insert("list-1").
		Title("Write report").
		Notes("Quarterly numbers").
		Due(due).
		Hidden(false).
		Links([]TaskLink{{Type: "email", Link: "https://mail.example.com/1"}}).
		Parent("parent-task").
		Previous("sibling-task")

	assert.Equal(t, http.MethodPost, b.req.Method)
	assert.Equal(t, "https://tasks.googleapis.com/tasks/v1/lists/list-1/tasks", b.req.URL)
	assert.Equal(t, "parent-task", b.req.Params.Get("parent"))
	assert.Equal(t, "sibling-task", b.req.Params.Get("previous"))

	raw, err := json.Marshal(b.task)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Write report", got["title"])
	assert.Equal(t, "Quarterly numbers", got["notes"])
	assert.Equal(t, "2025-06-15T12:00:00Z", got["due"])
	assert.Contains(t, got, "links")
}

func TestInsertBuilderWholeTask(t *testing.T) {
	b := NewService(testClient()).Insert("list-1").
		Task(Task{Title: "Seed", Notes: "from struct"}).
		Notes("overridden")

	assert.Equal(t, "Seed", b.task.Title)
	assert.Equal(t, "overridden", b.task.Notes)
}

func TestInsertBuilderNilPayload(t *testing.T) {
	b := &InsertBuilder{mgr: testClient(), req: transport.NewRequest()}

	_, err := b.Request(context.Background())
	assert.ErrorIs(t, err, ErrTaskNotInitialized)
}

func TestListRequestDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"items": [
				{"id": "task-1", "title": "First", "status": "needsAction"},
				{"id": "task-2", "title": "Second", "status": "completed"}
			]
		}`))
	}))
	defer srv.Close()

	b := NewService(testClient()).List("list-1")
	b.req.URL = srv.URL

	got, err := b.Request(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "First", got.Items[0].Title)
	assert.Equal(t, "completed", got.Items[1].Status)
}
