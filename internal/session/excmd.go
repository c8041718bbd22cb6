package session

import (
	"fmt"

	"tm-cli/internal/ex"
	"tm-cli/internal/keymap"
	"tm-cli/internal/model"
)

// Execute runs a parsed ex-command and records its outcome on the status line.
func (m *Machine) Execute(st *State, cmd ex.Command) {
	switch c := cmd.(type) {
	case ex.ConfigReload:
		if m.LoadKeymap != nil {
			st.Keymap = m.LoadKeymap()
		} else {
			st.Keymap = keymap.Default()
		}
		st.ok("config reloaded")

	case ex.New:
		project := model.DefaultProject
		if st.Project != "" {
			project = st.Project
		}
		if c.Project != nil {
			project = *c.Project
		}
		id, err := m.Store.CreateTask(model.TaskNew{
			Title:   c.Title,
			Project: project,
			Due:     c.Due,
			Tags:    c.Tags,
		})
		if err != nil {
			st.fail(err)
			return
		}
		st.ok("created task %s in project %s", id, project)

	case ex.Status:
		id := ""
		if c.ID != nil {
			id = *c.ID
		} else if task, ok := st.SelectedTask(); ok {
			id = task.ID
		}
		if id == "" {
			st.fail(errNoSelection)
			return
		}
		m.executeStatus(st, id, c.Set)

	case ex.OpenProject:
		if c.Key == "" {
			st.Project = ""
			st.ok("opened all projects")
			return
		}
		st.Project = c.Key
		st.Selected = 0
		st.ok("opened project %s", c.Key)

	case ex.ProjectNew:
		m.createProject(st, model.ProjectNew{Title: c.Title, Tags: c.Tags})

	default:
		panic(fmt.Sprintf("session: unhandled ex command %T", cmd))
	}
}

func (m *Machine) executeStatus(st *State, id string, set ex.StatusSet) {
	var fixed model.Status
	switch set {
	case ex.SetTodo:
		fixed = model.StatusTodo
	case ex.SetDoing:
		fixed = model.StatusDoing
	case ex.SetDone:
		fixed = model.StatusDone
	case ex.SetNext, ex.SetPrev:
		dir := model.Forward
		if set == ex.SetPrev {
			dir = model.Backward
		}
		next, err := m.Store.CycleStatus(id, dir)
		if err != nil {
			st.fail(err)
			return
		}
		st.ok("status -> %s", next)
		return
	default:
		panic(fmt.Sprintf("session: unhandled status set %v", set))
	}
	if err := m.Store.SetStatus(id, fixed); err != nil {
		st.fail(err)
		return
	}
	st.ok("status set: %s", fixed)
}
