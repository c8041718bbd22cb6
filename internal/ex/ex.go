// Package ex parses the one-line commands typed after ':' in the TUI.
//
//	new "Buy milk" project:home +errand due:2025-09-01
//	status [<id>] todo|doing|done|next|prev
//	open project:<key>
//	project.new "Home Renovation" +house
//	config.reload
package ex

import "tm-cli/internal/store"

// Command is one parsed ex-command. The concrete types are New, Status, OpenProject,
// ProjectNew and ConfigReload.
type Command interface {
	exCommand()
}

// New creates a task. A nil Project means the caller's default.
type New struct {
	Title   string
	Project *string
	Tags    []string
	Due     *string
}

// Status changes a task's status. A nil ID means the current selection.
type Status struct {
	ID  *string
	Set StatusSet
}

// OpenProject sets the project filter. An empty Key shows all projects.
type OpenProject struct {
	Key string
}

type ProjectNew struct {
	Title string
	Tags  []string
}

type ConfigReload struct{}

func (New) exCommand()          {}
func (Status) exCommand()       {}
func (OpenProject) exCommand()  {}
func (ProjectNew) exCommand()   {}
func (ConfigReload) exCommand() {}

// StatusSet is the target of a status command: a fixed state or a step through the cycle.
type StatusSet int

const (
	SetTodo StatusSet = iota + 1
	SetDoing
	SetDone
	SetNext
	SetPrev
)

func (s StatusSet) String() string {
	switch s {
	case SetTodo:
		return "todo"
	case SetDoing:
		return "doing"
	case SetDone:
		return "done"
	case SetNext:
		return "next"
	case SetPrev:
		return "prev"
	default:
		return "unknown"
	}
}

// Error is a parse failure. It matches store.ErrValidation.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Is(target error) bool { return target == store.ErrValidation }

func errorf(msg string) error { return &Error{Msg: msg} }
