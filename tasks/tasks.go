// Package tasks provides typed request builders for the Google Tasks API:
// listing task lists, listing and filtering tasks within a list, and
// inserting new tasks. Builders are mode-specific; task filters are not
// reachable from an insert, and payload setters are not reachable from a
// listing.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mantara-io/gworkspace/auth"
	"github.com/mantara-io/gworkspace/transport"
)

const tasksBaseURL = "https://tasks.googleapis.com/tasks/v1"

// ErrTaskNotInitialized is returned when an insert request is issued
// without a task payload.
var ErrTaskNotInitialized = errors.New("tasks: task payload not initialized")

var limiter = transport.NewRateLimiter(transport.ServiceTasks)

// Service is the entry point for task requests on behalf of one
// authenticated client.
type Service struct {
	mgr *auth.Client
}

// NewService creates a tasks request factory bound to the given client.
func NewService(mgr *auth.Client) *Service {
	return &Service{mgr: mgr}
}

func newRequest(method, url string) transport.Request {
	req := transport.NewRequest()
	req.Method = method
	req.URL = url
	req.Limiter = limiter
	return req
}

// TaskLists starts a listing of the user's task lists. This does not
// retrieve the tasks inside the lists.
func (s *Service) TaskLists() *TaskListsBuilder {
	return &TaskListsBuilder{
		mgr: s.mgr,
		req: newRequest(http.MethodGet, tasksBaseURL+"/users/@me/lists"),
	}
}

// List starts a listing of the tasks in one task list.
func (s *Service) List(taskListID string) *ListBuilder {
	return &ListBuilder{
		mgr: s.mgr,
		req: newRequest(http.MethodGet, fmt.Sprintf("%s/lists/%s/tasks", tasksBaseURL, taskListID)),
	}
}

// Insert starts creation of a task in the given task list.
func (s *Service) Insert(taskListID string) *InsertBuilder {
	return &InsertBuilder{
		mgr:  s.mgr,
		req:  newRequest(http.MethodPost, fmt.Sprintf("%s/lists/%s/tasks", tasksBaseURL, taskListID)),
		task: &Task{},
	}
}

// TaskListsBuilder lists the user's task lists.
type TaskListsBuilder struct {
	mgr *auth.Client
	req transport.Request
}

// MaxResults caps the number of task lists per page.
func (b *TaskListsBuilder) MaxResults(max int64) *TaskListsBuilder {
	b.req.SetParam("maxResults", strconv.FormatInt(max, 10))
	return b
}

// PageToken resumes a listing from a previous page.
func (b *TaskListsBuilder) PageToken(token string) *TaskListsBuilder {
	b.req.SetParam("pageToken", token)
	return b
}

// Request issues the listing. The token refresh check runs first.
func (b *TaskListsBuilder) Request(ctx context.Context) (*TaskLists, error) {
	if err := b.mgr.CheckRefresh(ctx); err != nil {
		return nil, err
	}
	return transport.Do[TaskLists](ctx, b.mgr.HTTPClient(), b.req, nil)
}

// ListBuilder lists tasks within one task list.
type ListBuilder struct {
	mgr *auth.Client
	req transport.Request
}

// MaxResults caps the number of tasks per page.
func (b *ListBuilder) MaxResults(max int64) *ListBuilder {
	b.req.SetParam("maxResults", strconv.FormatInt(max, 10))
	return b
}

// PageToken resumes a listing from a previous page.
func (b *ListBuilder) PageToken(token string) *ListBuilder {
	b.req.SetParam("pageToken", token)
	return b
}

// CompletedMin filters out tasks completed before the given instant.
func (b *ListBuilder) CompletedMin(t time.Time) *ListBuilder {
	b.req.SetParam("completedMin", t.Format(time.RFC3339))
	return b
}

// CompletedMax filters out tasks completed after the given instant.
func (b *ListBuilder) CompletedMax(t time.Time) *ListBuilder {
	b.req.SetParam("completedMax", t.Format(time.RFC3339))
	return b
}

// DueMin filters out tasks due before the given instant.
func (b *ListBuilder) DueMin(t time.Time) *ListBuilder {
	b.req.SetParam("dueMin", t.Format(time.RFC3339))
	return b
}

// DueMax filters out tasks due after the given instant.
func (b *ListBuilder) DueMax(t time.Time) *ListBuilder {
	b.req.SetParam("dueMax", t.Format(time.RFC3339))
	return b
}

// UpdatedMin filters out tasks not modified since the given instant.
func (b *ListBuilder) UpdatedMin(t time.Time) *ListBuilder {
	b.req.SetParam("updatedMin", t.Format(time.RFC3339))
	return b
}

// ShowCompleted includes completed tasks.
func (b *ListBuilder) ShowCompleted(show bool) *ListBuilder {
	b.req.SetParam("showCompleted", strconv.FormatBool(show))
	return b
}

// ShowDeleted includes deleted tasks.
func (b *ListBuilder) ShowDeleted(show bool) *ListBuilder {
	b.req.SetParam("showDeleted", strconv.FormatBool(show))
	return b
}

// ShowHidden includes hidden tasks.
func (b *ListBuilder) ShowHidden(show bool) *ListBuilder {
	b.req.SetParam("showHidden", strconv.FormatBool(show))
	return b
}

// ShowAssigned includes tasks assigned to the user.
func (b *ListBuilder) ShowAssigned(show bool) *ListBuilder {
	b.req.SetParam("showAssigned", strconv.FormatBool(show))
	return b
}

// Request issues the listing. The token refresh check runs first.
func (b *ListBuilder) Request(ctx context.Context) (*Tasks, error) {
	if err := b.mgr.CheckRefresh(ctx); err != nil {
		return nil, err
	}
	return transport.Do[Tasks](ctx, b.mgr.HTTPClient(), b.req, nil)
}

// InsertBuilder creates a task.
type InsertBuilder struct {
	mgr  *auth.Client
	req  transport.Request
	task *Task
}

// Task replaces the whole payload with the given task.
func (b *InsertBuilder) Task(task Task) *InsertBuilder {
	b.task = &task
	return b
}

// Title sets the task title.
func (b *InsertBuilder) Title(title string) *InsertBuilder {
	b.task.Title = title
	return b
}

// Notes sets the task notes.
func (b *InsertBuilder) Notes(notes string) *InsertBuilder {
	b.task.Notes = notes
	return b
}

// Etag sets the task etag.
func (b *InsertBuilder) Etag(etag string) *InsertBuilder {
	b.task.Etag = etag
	return b
}

// Due sets the due instant.
func (b *InsertBuilder) Due(t time.Time) *InsertBuilder {
	b.task.Due = t.Format(time.RFC3339)
	return b
}

// Completed sets the completion instant.
func (b *InsertBuilder) Completed(t time.Time) *InsertBuilder {
	b.task.Completed = t.Format(time.RFC3339)
	return b
}

// Hidden marks the task hidden.
func (b *InsertBuilder) Hidden(hidden bool) *InsertBuilder {
	b.task.Hidden = hidden
	return b
}

// Links sets the linked resources.
func (b *InsertBuilder) Links(links []TaskLink) *InsertBuilder {
	b.task.Links = links
	return b
}

// Parent makes the new task a subtask of the given task.
func (b *InsertBuilder) Parent(taskID string) *InsertBuilder {
	b.req.SetParam("parent", taskID)
	return b
}

// Previous positions the new task after the given sibling.
func (b *InsertBuilder) Previous(taskID string) *InsertBuilder {
	b.req.SetParam("previous", taskID)
	return b
}

// Request issues the insert and returns the created task.
func (b *InsertBuilder) Request(ctx context.Context) (*Task, error) {
	if b.task == nil {
		return nil, ErrTaskNotInitialized
	}
	if err := b.mgr.CheckRefresh(ctx); err != nil {
		return nil, err
	}
	return transport.Do[Task](ctx, b.mgr.HTTPClient(), b.req, b.task)
}
