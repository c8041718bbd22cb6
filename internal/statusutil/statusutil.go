package statusutil

import (
	"fmt"
	"strings"

	"tm-cli/internal/model"
)

// Parse decodes a stored status leniently. Unknown or empty values read as todo so that
// foreign or legacy files never fail to load.
func Parse(s string) model.Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "doing", "in-progress", "in_progress":
		return model.StatusDoing
	case "done":
		return model.StatusDone
	default:
		return model.StatusTodo
	}
}

// ParseStrict is used for user input, where an unknown value is a mistake worth reporting.
func ParseStrict(s string) (model.Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return model.StatusTodo, nil
	case "doing", "in-progress", "in_progress":
		return model.StatusDoing, nil
	case "done":
		return model.StatusDone, nil
	case "":
		return "", fmt.Errorf("invalid status: empty")
	default:
		return "", fmt.Errorf("unknown status: %s (use: todo|doing|done)", strings.TrimSpace(s))
	}
}
