package model

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Direction selects which way CycleStatus walks the lifecycle.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Next returns the following state: todo -> doing -> done -> todo.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusDoing
	case StatusDoing:
		return StatusDone
	default:
		return StatusTodo
	}
}

// Prev is the exact inverse of Next.
func (s Status) Prev() Status {
	switch s {
	case StatusDoing:
		return StatusTodo
	case StatusDone:
		return StatusDoing
	default:
		return StatusDone
	}
}

func (s Status) Advance(d Direction) Status {
	if d < 0 {
		return s.Prev()
	}
	return s.Next()
}

func (s Status) String() string { return string(s) }

const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"

	// DefaultProject is used when a task is created without a project.
	DefaultProject = "inbox"

	PriorityNone = "none"
)

type Task struct {
	ID       string    `json:"id"`
	Key      string    `json:"key"`
	Title    string    `json:"title"`
	Status   Status    `json:"status"`
	Project  string    `json:"project"`
	Tags     []string  `json:"tags"`
	Priority string    `json:"priority"`
	Due      *string   `json:"due,omitempty"`
	Parent   *string   `json:"parent,omitempty"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`

	// Path is the file the task was read from. Not part of the frontmatter.
	Path string `json:"path,omitempty"`
}

type Project struct {
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	Tags        []string  `json:"tags"`
	Description *string   `json:"description,omitempty"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`

	Path string `json:"path,omitempty"`
}

// TaskNew carries the user-supplied fields of a task about to be created.
type TaskNew struct {
	Title   string
	Project string
	Due     *string
	Tags    []string
}

type ProjectNew struct {
	Title string
	Tags  []string
}
