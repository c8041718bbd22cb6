// Package session is the terminal controller: one State value plus a transition function that
// consumes key events, resolves them through the keymap or the ex parser, and calls the store.
// Rendering is left to the front-end, which reads State after every Handle.
package session

import (
	"fmt"
	"strings"

	"tm-cli/internal/keymap"
	"tm-cli/internal/model"
)

type Mode int

const (
	ModeBrowsing Mode = iota
	ModeFiltering
	ModeEditingField
	ModePickingProject
	ModeNewProject
	ModeExCommand
)

func (m Mode) String() string {
	switch m {
	case ModeBrowsing:
		return "browse"
	case ModeFiltering:
		return "filter"
	case ModeEditingField:
		return "edit"
	case ModePickingProject:
		return "pick project"
	case ModeNewProject:
		return "new project"
	case ModeExCommand:
		return "command"
	default:
		return "unknown"
	}
}

// FieldKind is the task field being edited in ModeEditingField.
type FieldKind int

const (
	FieldDue FieldKind = iota
	FieldTitle
	FieldTags
)

func (f FieldKind) String() string {
	switch f {
	case FieldDue:
		return "due"
	case FieldTitle:
		return "title"
	case FieldTags:
		return "tags"
	default:
		return "unknown"
	}
}

// Result is the status line: the outcome of the last action, kept until the next one.
type Result struct {
	Text  string
	IsErr bool
}

// State is everything the controller knows between events.
type State struct {
	Mode  Mode
	Field FieldKind

	// Buffer is the text being typed in edit, new-project and ex modes.
	Buffer string

	// Filter is the text filter; it stays active after leaving filter mode.
	Filter string

	// Project is the current project filter; empty means all projects.
	Project string

	// Projects is the sorted project key list used by the picker and by [ and ].
	Projects  []string
	PickIndex int

	// Tasks is the last full listing; Visible is Tasks after the project and text filters.
	Tasks    []model.Task
	Visible  []model.Task
	Selected int

	// PendingG is set after a lone 'g' while waiting for the second half of gg.
	PendingG bool

	Result *Result
	Keymap keymap.Keymap
	Quit   bool
}

// NewState starts in browse mode with the given keymap.
func NewState(km keymap.Keymap) *State {
	return &State{Keymap: km}
}

// SelectedTask returns the task under the cursor, if the visible list is non-empty.
func (st *State) SelectedTask() (model.Task, bool) {
	if st.Selected < 0 || st.Selected >= len(st.Visible) {
		return model.Task{}, false
	}
	return st.Visible[st.Selected], true
}

// SelectID moves the cursor to the visible task with id, if present.
func (st *State) SelectID(id string) bool {
	for i, t := range st.Visible {
		if t.ID == id {
			st.Selected = i
			return true
		}
	}
	return false
}

func (st *State) ok(format string, args ...any) {
	st.Result = &Result{Text: fmt.Sprintf(format, args...)}
}

func (st *State) fail(err error) {
	st.Result = &Result{Text: err.Error(), IsErr: true}
}

func (st *State) failText(text string) {
	st.Result = &Result{Text: text, IsErr: true}
}

// Matches is the visibility rule: project equality when a project is set, and a
// case-insensitive substring match of filter against "[status] title project".
func Matches(t model.Task, project, filter string) bool {
	if project != "" && t.Project != project {
		return false
	}
	if filter == "" {
		return true
	}
	hay := strings.ToLower(fmt.Sprintf("[%s] %s %s", t.Status, t.Title, t.Project))
	return strings.Contains(hay, strings.ToLower(filter))
}

func (st *State) recomputeVisible() {
	vis := make([]model.Task, 0, len(st.Tasks))
	for _, t := range st.Tasks {
		if Matches(t, st.Project, st.Filter) {
			vis = append(vis, t)
		}
	}
	st.Visible = vis
	st.clampSelection()
}

func (st *State) clampSelection() {
	if len(st.Visible) == 0 || st.Selected < 0 {
		st.Selected = 0
		return
	}
	if st.Selected > len(st.Visible)-1 {
		st.Selected = len(st.Visible) - 1
	}
}
