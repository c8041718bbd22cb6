package store

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"tm-cli/internal/model"
	"tm-cli/internal/statusutil"

	"gopkg.in/yaml.v3"
)

const fmDelimiter = "---"

var errNoFrontmatter = errors.New("no frontmatter")

// taskFrontmatter is the on-disk metadata of a task file. Keys the struct does not know about
// are carried in Extra so metadata edits never drop them.
type taskFrontmatter struct {
	ID       string   `yaml:"id"`
	Key      string   `yaml:"key"`
	Title    string   `yaml:"title"`
	Status   string   `yaml:"status"`
	Project  string   `yaml:"project"`
	Tags     []string `yaml:"tags"`
	Priority string   `yaml:"priority"`
	Due      *string  `yaml:"due"`
	Created  *string  `yaml:"created"`
	Updated  *string  `yaml:"updated"`
	Parent   *string  `yaml:"parent"`

	Extra map[string]any `yaml:",inline"`
}

type projectFrontmatter struct {
	Key         string   `yaml:"key"`
	Title       string   `yaml:"title"`
	Status      string   `yaml:"status"`
	Tags        []string `yaml:"tags"`
	Created     *string  `yaml:"created"`
	Updated     *string  `yaml:"updated"`
	Description *string  `yaml:"description"`

	Extra map[string]any `yaml:",inline"`
}

// splitFrontmatter separates a record into its YAML block and body. The file must open with a
// "---" line and contain a closing "---" line; one newline after the closing delimiter belongs
// to the envelope, everything after it is body.
func splitFrontmatter(b []byte) (meta []byte, body []byte, err error) {
	open := []byte(fmDelimiter + "\n")
	if !bytes.HasPrefix(b, open) {
		return nil, nil, errNoFrontmatter
	}
	rest := b[len(open):]

	var metaEnd, bodyStart int
	switch {
	case bytes.HasPrefix(rest, open):
		metaEnd, bodyStart = 0, len(open)
	case bytes.Equal(rest, []byte(fmDelimiter)):
		metaEnd, bodyStart = 0, len(fmDelimiter)
	default:
		idx := indexClosingDelimiter(rest)
		if idx < 0 {
			return nil, nil, errNoFrontmatter
		}
		metaEnd = idx
		bodyStart = idx + 1 + len(fmDelimiter)
		if bodyStart < len(rest) && rest[bodyStart] == '\n' {
			bodyStart++
		}
	}
	return rest[:metaEnd], rest[bodyStart:], nil
}

// indexClosingDelimiter returns the offset of the "\n" that starts the closing "---" line.
func indexClosingDelimiter(b []byte) int {
	needle := []byte("\n" + fmDelimiter)
	off := 0
	for {
		i := bytes.Index(b[off:], needle)
		if i < 0 {
			return -1
		}
		at := off + i
		end := at + len(needle)
		if end == len(b) || b[end] == '\n' {
			return at
		}
		off = end
	}
}

func joinFrontmatter(v any, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fmDelimiter + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteString(fmDelimiter + "\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

func decodeTaskFile(path string, b []byte) (taskFrontmatter, []byte, error) {
	meta, body, err := splitFrontmatter(b)
	if err != nil {
		return taskFrontmatter{}, nil, &DecodeError{Path: path, Err: err}
	}
	var fm taskFrontmatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return taskFrontmatter{}, nil, &DecodeError{Path: path, Err: err}
	}
	if strings.TrimSpace(fm.ID) == "" {
		return taskFrontmatter{}, nil, &DecodeError{Path: path, Err: errors.New("missing id")}
	}
	return fm, body, nil
}

func decodeProjectFile(path string, b []byte) (projectFrontmatter, []byte, error) {
	meta, body, err := splitFrontmatter(b)
	if err != nil {
		return projectFrontmatter{}, nil, &DecodeError{Path: path, Err: err}
	}
	var fm projectFrontmatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return projectFrontmatter{}, nil, &DecodeError{Path: path, Err: err}
	}
	if strings.TrimSpace(fm.Key) == "" {
		return projectFrontmatter{}, nil, &DecodeError{Path: path, Err: errors.New("missing key")}
	}
	return fm, body, nil
}

func (fm taskFrontmatter) toTask(path string) model.Task {
	tags := fm.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Task{
		ID:       fm.ID,
		Key:      fm.Key,
		Title:    fm.Title,
		Status:   statusutil.Parse(fm.Status),
		Project:  fm.Project,
		Tags:     tags,
		Priority: fm.Priority,
		Due:      fm.Due,
		Parent:   fm.Parent,
		Created:  parseTimestamp(fm.Created),
		Updated:  parseTimestamp(fm.Updated),
		Path:     path,
	}
}

func (fm projectFrontmatter) toProject(path string) model.Project {
	tags := fm.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.Project{
		Key:         fm.Key,
		Title:       fm.Title,
		Status:      fm.Status,
		Tags:        tags,
		Description: fm.Description,
		Created:     parseTimestamp(fm.Created),
		Updated:     parseTimestamp(fm.Updated),
		Path:        path,
	}
}

func formatTimestamp(t time.Time) *string {
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}

// parseTimestamp is lenient: a missing or foreign value reads as the zero time.
func parseTimestamp(s *string) time.Time {
	if s == nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(*s))
	if err != nil {
		return time.Time{}
	}
	return t
}
