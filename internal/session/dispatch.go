package session

import (
	"fmt"

	"tm-cli/internal/keymap"
	"tm-cli/internal/model"
)

// halfPage is ceil(n/2), at least 1.
func halfPage(n int) int {
	return max((n+1)/2, 1)
}

// Dispatch runs a keymap action against the visible list. Navigation clamps the selection to
// the list; on an empty list it stays at 0.
func (m *Machine) Dispatch(st *State, a keymap.Action) {
	n := len(st.Visible)
	last := max(n-1, 0)
	switch a {
	case keymap.MoveDown:
		if st.Selected+1 < n {
			st.Selected++
		}
	case keymap.MoveUp:
		if st.Selected > 0 {
			st.Selected--
		}
	case keymap.HalfPageDown:
		st.Selected = min(st.Selected+halfPage(n), last)
	case keymap.HalfPageUp:
		st.Selected = max(st.Selected-halfPage(n), 0)
	case keymap.GoTop:
		st.Selected = 0
	case keymap.GoBottom:
		st.Selected = last
	case keymap.FocusFilter:
		st.Mode = ModeFiltering
	case keymap.Quit:
		st.Quit = true
	case keymap.StatusNext, keymap.StatusPrev, keymap.SetTodo, keymap.SetDoing, keymap.SetDone:
		m.applyStatusAction(st, a)
	default:
		panic(fmt.Sprintf("session: unhandled action %v", a))
	}
}

func (m *Machine) applyStatusAction(st *State, a keymap.Action) {
	task, ok := st.SelectedTask()
	if !ok {
		st.fail(errNoSelection)
		return
	}
	var (
		next model.Status
		err  error
	)
	switch a {
	case keymap.StatusNext:
		next, err = m.Store.CycleStatus(task.ID, model.Forward)
	case keymap.StatusPrev:
		next, err = m.Store.CycleStatus(task.ID, model.Backward)
	case keymap.SetTodo:
		next, err = model.StatusTodo, m.Store.SetStatus(task.ID, model.StatusTodo)
	case keymap.SetDoing:
		next, err = model.StatusDoing, m.Store.SetStatus(task.ID, model.StatusDoing)
	case keymap.SetDone:
		next, err = model.StatusDone, m.Store.SetStatus(task.ID, model.StatusDone)
	}
	if err != nil {
		m.logger().Warn("status change failed", "id", task.ID, "err", err)
		st.fail(err)
		return
	}
	st.ok("status -> %s", next)
}
