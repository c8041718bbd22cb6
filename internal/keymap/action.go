package keymap

// Action is a semantic command a key token can resolve to.
type Action int

const (
	MoveDown Action = iota + 1
	MoveUp
	HalfPageDown
	HalfPageUp
	GoTop
	GoBottom
	FocusFilter
	Quit
	StatusNext
	StatusPrev
	SetTodo
	SetDoing
	SetDone
)

var actionNames = map[Action]string{
	MoveDown:     "move_down",
	MoveUp:       "move_up",
	HalfPageDown: "half_page_down",
	HalfPageUp:   "half_page_up",
	GoTop:        "go_top",
	GoBottom:     "go_bottom",
	FocusFilter:  "focus_filter",
	Quit:         "quit",
	StatusNext:   "status_next",
	StatusPrev:   "status_prev",
	SetTodo:      "set_todo",
	SetDoing:     "set_doing",
	SetDone:      "set_done",
}

var actionHelp = map[Action]string{
	MoveDown:     "down",
	MoveUp:       "up",
	HalfPageDown: "half page down",
	HalfPageUp:   "half page up",
	GoTop:        "top",
	GoBottom:     "bottom",
	FocusFilter:  "filter",
	Quit:         "quit",
	StatusNext:   "next status",
	StatusPrev:   "prev status",
	SetTodo:      "todo",
	SetDoing:     "doing",
	SetDone:      "done",
}

// String returns the config name, e.g. "half_page_down".
func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// Help is the short label shown in the help footer.
func (a Action) Help() string {
	return actionHelp[a]
}

// Actions lists every action in declaration order.
func Actions() []Action {
	return []Action{
		MoveDown, MoveUp, HalfPageDown, HalfPageUp, GoTop, GoBottom, FocusFilter, Quit,
		StatusNext, StatusPrev, SetTodo, SetDoing, SetDone,
	}
}

// ParseActionName maps a config name to its action.
func ParseActionName(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return 0, false
}
