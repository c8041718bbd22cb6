package session

import (
	"errors"
	"io"
	"sort"
	"strings"

	"tm-cli/internal/ex"
	"tm-cli/internal/keymap"
	"tm-cli/internal/model"

	"github.com/charmbracelet/log"
)

// Store is the part of store.Vault the controller calls.
type Store interface {
	ListTasks(project string) ([]model.Task, error)
	ProjectKeys() ([]string, error)
	CreateTask(in model.TaskNew) (string, error)
	CreateProject(in model.ProjectNew) (string, error)
	SetStatus(id string, status model.Status) error
	CycleStatus(id string, dir model.Direction) (model.Status, error)
	SetDue(id, text string) error
	SetTagsFromDelimitedList(id, text string) error
	RenameTitle(id, title string) error
}

// Clipboard receives copied task ids.
type Clipboard interface {
	WriteAll(text string) error
}

// Event is one key press, already converted from the front-end's native event.
type Event struct {
	Key keymap.Key
}

// Machine holds the collaborators; all mutable session data lives in State.
type Machine struct {
	Store Store

	// LoadKeymap re-reads the user keymap for config.reload. Nil reloads the defaults.
	LoadKeymap func() keymap.Keymap

	Clipboard Clipboard
	Logger    *log.Logger
}

var (
	errNoSelection = errors.New("no task selected")
	discard        = log.New(io.Discard)
)

// Handle applies one event to st. The event is interpreted against the listing st already holds;
// afterwards the listing is re-read so st reflects the store.
func (m *Machine) Handle(st *State, ev Event) {
	switch st.Mode {
	case ModeExCommand:
		m.handleEx(st, ev.Key)
	case ModeFiltering:
		m.handleFilter(st, ev.Key)
	case ModeEditingField:
		m.handleEdit(st, ev.Key)
	case ModePickingProject:
		m.handlePick(st, ev.Key)
	case ModeNewProject:
		m.handleNewProject(st, ev.Key)
	default:
		m.handleBrowse(st, ev.Key)
	}
	m.Refresh(st)
}

// Refresh re-reads tasks and project keys and recomputes the visible list. A failed read keeps
// the previous listing and reports the error on the status line.
func (m *Machine) Refresh(st *State) {
	tasks, err := m.Store.ListTasks("")
	if err != nil {
		m.logger().Error("list tasks", "err", err)
		st.fail(err)
	} else {
		st.Tasks = tasks
	}
	if keys, err := m.Store.ProjectKeys(); err == nil {
		st.Projects = keys
	} else {
		m.logger().Error("list projects", "err", err)
	}
	if st.PickIndex > len(st.Projects)-1 {
		st.PickIndex = max(len(st.Projects)-1, 0)
	}
	st.recomputeVisible()
}

func (m *Machine) logger() *log.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return discard
}

// editBuffer applies printable input and backspace to buf. It reports whether k was consumed.
func editBuffer(buf *string, k keymap.Key) bool {
	switch {
	case k.Named == keymap.NameBackspace:
		if r := []rune(*buf); len(r) > 0 {
			*buf = string(r[:len(r)-1])
		}
		return true
	case k.Printable():
		*buf += string(k.Rune)
		return true
	}
	return false
}

func (m *Machine) handleBrowse(st *State, k keymap.Key) {
	tok := keymap.Token(k)

	// Hotkeys handled before the keymap.
	switch tok {
	case ":":
		st.PendingG = false
		st.Mode = ModeExCommand
		st.Buffer = ""
		return
	case "O":
		st.PendingG = false
		m.reloadProjects(st)
		st.PickIndex = 0
		for i, key := range st.Projects {
			if key == st.Project {
				st.PickIndex = i
			}
		}
		st.Mode = ModePickingProject
		return
	case "]":
		st.PendingG = false
		m.cycleProject(st, model.Forward)
		return
	case "[":
		st.PendingG = false
		m.cycleProject(st, model.Backward)
		return
	case "P":
		st.PendingG = false
		st.Mode = ModeNewProject
		st.Buffer = ""
		return
	}

	// gg: a second plain 'g' completes the chord; any other key breaks it.
	if tok == "g" {
		if st.PendingG {
			st.PendingG = false
			m.Dispatch(st, keymap.GoTop)
		} else {
			st.PendingG = true
		}
		return
	}
	st.PendingG = false

	if a, ok := st.Keymap.Lookup(tok); ok {
		m.Dispatch(st, a)
		return
	}

	// Fallback hotkeys, reachable only when the keymap does not claim the token.
	switch tok {
	case "D":
		m.beginEdit(st, FieldDue)
	case "R":
		m.beginEdit(st, FieldTitle)
	case "T":
		m.beginEdit(st, FieldTags)
	case "/":
		st.Mode = ModeFiltering
	case "y":
		m.copySelectedID(st)
	case "r":
		st.ok("reloaded")
	}
}

func (m *Machine) beginEdit(st *State, f FieldKind) {
	st.Mode = ModeEditingField
	st.Field = f
	st.Buffer = ""
}

func (m *Machine) handleFilter(st *State, k keymap.Key) {
	switch k.Named {
	case keymap.NameEsc, keymap.NameEnter:
		st.Mode = ModeBrowsing
		return
	}
	if editBuffer(&st.Filter, k) {
		st.Selected = 0
	}
}

func (m *Machine) handleEdit(st *State, k keymap.Key) {
	switch k.Named {
	case keymap.NameEsc:
		st.Mode = ModeBrowsing
		st.Buffer = ""
		return
	case keymap.NameEnter:
		if task, ok := st.SelectedTask(); ok {
			var err error
			switch st.Field {
			case FieldDue:
				err = m.Store.SetDue(task.ID, st.Buffer)
			case FieldTitle:
				err = m.Store.RenameTitle(task.ID, st.Buffer)
			case FieldTags:
				err = m.Store.SetTagsFromDelimitedList(task.ID, st.Buffer)
			}
			if err != nil {
				st.fail(err)
			} else {
				st.ok("saved")
			}
		}
		st.Mode = ModeBrowsing
		st.Buffer = ""
		return
	}
	editBuffer(&st.Buffer, k)
}

func (m *Machine) handlePick(st *State, k keymap.Key) {
	tok := keymap.Token(k)
	switch {
	case k.Named == keymap.NameEsc:
		st.Mode = ModeBrowsing
	case k.Named == keymap.NameEnter:
		if len(st.Projects) == 0 {
			st.Project = ""
		} else {
			st.PickIndex = min(st.PickIndex, len(st.Projects)-1)
			st.Project = st.Projects[st.PickIndex]
		}
		st.Selected = 0
		st.Mode = ModeBrowsing
	case k.Named == keymap.NameUp || tok == "k":
		if st.PickIndex > 0 {
			st.PickIndex--
		}
	case k.Named == keymap.NameDown || tok == "j":
		if st.PickIndex+1 < len(st.Projects) {
			st.PickIndex++
		}
	}
}

func (m *Machine) handleNewProject(st *State, k keymap.Key) {
	switch k.Named {
	case keymap.NameEsc:
		st.Mode = ModeBrowsing
		st.Buffer = ""
		return
	case keymap.NameEnter:
		if title := strings.TrimSpace(st.Buffer); title != "" {
			m.createProject(st, model.ProjectNew{Title: title})
		}
		st.Mode = ModeBrowsing
		st.Buffer = ""
		return
	}
	editBuffer(&st.Buffer, k)
}

func (m *Machine) handleEx(st *State, k keymap.Key) {
	switch k.Named {
	case keymap.NameEsc:
		// The previous result stays on the status line.
		st.Mode = ModeBrowsing
		st.Buffer = ""
		return
	case keymap.NameEnter:
		line := st.Buffer
		st.Mode = ModeBrowsing
		st.Buffer = ""
		cmd, err := ex.Parse(line)
		if err != nil {
			st.fail(err)
			return
		}
		m.Execute(st, cmd)
		return
	}
	editBuffer(&st.Buffer, k)
}

func (m *Machine) reloadProjects(st *State) {
	keys, err := m.Store.ProjectKeys()
	if err != nil {
		st.fail(err)
		return
	}
	sort.Strings(keys)
	st.Projects = keys
}

// cycleProject moves the project filter to the next or previous key, wrapping. An unknown or
// empty current filter lands on the first key; no projects clears the filter.
func (m *Machine) cycleProject(st *State, dir model.Direction) {
	m.reloadProjects(st)
	n := len(st.Projects)
	if n == 0 {
		st.Project = ""
		return
	}
	idx := 0
	for i, key := range st.Projects {
		if key != st.Project {
			continue
		}
		if dir == model.Forward {
			idx = (i + 1) % n
		} else {
			idx = (i - 1 + n) % n
		}
		break
	}
	st.Project = st.Projects[idx]
	st.Selected = 0
}

func (m *Machine) createProject(st *State, in model.ProjectNew) {
	key, err := m.Store.CreateProject(in)
	if err != nil {
		st.fail(err)
		return
	}
	m.reloadProjects(st)
	st.Project = key
	st.Selected = 0
	st.ok("created project %s", key)
}

func (m *Machine) copySelectedID(st *State) {
	task, ok := st.SelectedTask()
	if !ok {
		st.fail(errNoSelection)
		return
	}
	if m.Clipboard == nil {
		st.failText("clipboard unavailable")
		return
	}
	if err := m.Clipboard.WriteAll(task.ID); err != nil {
		st.fail(err)
		return
	}
	st.ok("copied %s", task.ID)
}
