package tasks

// TaskList is a list container owned by the authenticated user.
type TaskList struct {
	Kind     string `json:"kind,omitempty"`
	ID       string `json:"id,omitempty"`
	Etag     string `json:"etag,omitempty"`
	Title    string `json:"title,omitempty"`
	Updated  string `json:"updated,omitempty"`
	SelfLink string `json:"selfLink,omitempty"`
}

// TaskLists is one page of the user's task lists.
type TaskLists struct {
	Kind          string     `json:"kind,omitempty"`
	Etag          string     `json:"etag,omitempty"`
	NextPageToken string     `json:"nextPageToken,omitempty"`
	Items         []TaskList `json:"items,omitempty"`
}

// TaskLink is a resource linked from a task.
type TaskLink struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Task is a single task within a task list.
type Task struct {
	Kind      string     `json:"kind,omitempty"`
	ID        string     `json:"id,omitempty"`
	Etag      string     `json:"etag,omitempty"`
	Title     string     `json:"title,omitempty"`
	Updated   string     `json:"updated,omitempty"`
	SelfLink  string     `json:"selfLink,omitempty"`
	Parent    string     `json:"parent,omitempty"`
	Position  string     `json:"position,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Status    string     `json:"status,omitempty"`
	Due       string     `json:"due,omitempty"`
	Completed string     `json:"completed,omitempty"`
	Deleted   bool       `json:"deleted,omitempty"`
	Hidden    bool       `json:"hidden,omitempty"`
	Links     []TaskLink `json:"links,omitempty"`
}

// Tasks is one page of tasks from a task list.
type Tasks struct {
	Kind          string `json:"kind,omitempty"`
	Etag          string `json:"etag,omitempty"`
	NextPageToken string `json:"nextPageToken,omitempty"`
	Items         []Task `json:"items,omitempty"`
}
