package ex

import (
	"strings"
	"unicode"
)

const (
	projectPrefix = "project:"
	duePrefix     = "due:"
	tagPrefix     = "+"
)

// Parse turns a command line into a Command. A leading ':' is optional.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if line == "" {
		return nil, errorf("empty command")
	}
	if line == "config.reload" {
		return ConfigReload{}, nil
	}

	toks := tokenize(line)
	if len(toks) == 0 {
		return nil, errorf("empty command")
	}
	name, args := toks[0], toks[1:]
	switch name {
	case "new":
		return parseNew(args)
	case "status":
		return parseStatus(args)
	case "open":
		return parseOpen(args), nil
	case "project.new":
		return parseProjectNew(args)
	default:
		return nil, errorf("unknown command '" + name + "'")
	}
}

// tokenize splits on whitespace; a double quote toggles a span in which whitespace is literal.
// Quotes are dropped and cannot be escaped.
func tokenize(s string) []string {
	var out []string
	var cur []rune
	inQuotes := false

	flush := func() {
		if len(cur) == 0 {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
	}

	for _, r := range s {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes && unicode.IsSpace(r) {
			flush()
			continue
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

func isFlag(tok string) bool {
	return strings.HasPrefix(tok, projectPrefix) ||
		strings.HasPrefix(tok, duePrefix) ||
		strings.HasPrefix(tok, tagPrefix)
}

func parseNew(args []string) (Command, error) {
	cmd := New{Tags: []string{}}
	for _, tok := range args {
		switch {
		case strings.HasPrefix(tok, projectPrefix):
			if p := strings.TrimPrefix(tok, projectPrefix); p != "" {
				cmd.Project = &p
			}
		case strings.HasPrefix(tok, duePrefix):
			if d := strings.TrimPrefix(tok, duePrefix); d != "" {
				cmd.Due = &d
			}
		case strings.HasPrefix(tok, tagPrefix):
			if t := strings.TrimPrefix(tok, tagPrefix); t != "" {
				cmd.Tags = append(cmd.Tags, t)
			}
		case cmd.Title == "":
			cmd.Title = tok
		}
	}
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, errorf(":new requires a title (quoted if it has spaces)")
	}
	return cmd, nil
}

func parseStatus(args []string) (Command, error) {
	var cmd Status
	var setTok string
	switch len(args) {
	case 0:
		return nil, errorf("usage: :status [<id>] (todo|doing|done|next|prev)")
	case 1:
		setTok = args[0]
	default:
		id := args[0]
		cmd.ID = &id
		setTok = args[1]
	}
	set, err := ParseStatusSet(setTok)
	if err != nil {
		return nil, err
	}
	cmd.Set = set
	return cmd, nil
}

// ParseStatusSet accepts todo, doing (or in-progress, in_progress), done, next and prev.
func ParseStatusSet(s string) (StatusSet, error) {
	switch s {
	case "todo":
		return SetTodo, nil
	case "doing", "in-progress", "in_progress":
		return SetDoing, nil
	case "done":
		return SetDone, nil
	case "next":
		return SetNext, nil
	case "prev":
		return SetPrev, nil
	default:
		return 0, errorf("unknown status '" + s + "'")
	}
}

// parseOpen takes the last project:<key> or bare key. No key opens all projects.
func parseOpen(args []string) Command {
	var cmd OpenProject
	for _, tok := range args {
		if strings.HasPrefix(tok, projectPrefix) {
			cmd.Key = strings.TrimPrefix(tok, projectPrefix)
			continue
		}
		if !isFlag(tok) {
			cmd.Key = tok
		}
	}
	return cmd
}

func parseProjectNew(args []string) (Command, error) {
	cmd := ProjectNew{Tags: []string{}}
	for _, tok := range args {
		switch {
		case strings.HasPrefix(tok, tagPrefix):
			if t := strings.TrimPrefix(tok, tagPrefix); t != "" {
				cmd.Tags = append(cmd.Tags, t)
			}
		case cmd.Title == "":
			cmd.Title = tok
		}
	}
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, errorf(":project.new requires a title")
	}
	return cmd, nil
}
