package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tm-cli/internal/model"
)

// CreateTask writes a new todo task and returns its id.
func (v Vault) CreateTask(in model.TaskNew) (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", errValidation("title", "must not be empty")
	}
	id, err := newTaskID()
	if err != nil {
		return "", errIO("generate id", "", err)
	}
	now := v.now()
	slug := Slugify(title)
	tags := normalizeTags(in.Tags)

	fm := taskFrontmatter{
		ID:       id,
		Key:      slug,
		Title:    title,
		Status:   string(model.StatusTodo),
		Project:  strings.TrimSpace(in.Project),
		Tags:     tags,
		Priority: model.PriorityNone,
		Due:      trimmedOrNil(in.Due),
		Created:  formatTimestamp(now),
		Updated:  formatTimestamp(now),
	}
	b, err := joinFrontmatter(fm, []byte("\n"))
	if err != nil {
		return "", &DecodeError{Err: err}
	}
	path := v.taskPath(now, slug, id)
	if err := writeRecord(path, b); err != nil {
		return "", err
	}
	return id, nil
}

// ListTasks returns every decodable task, newest update first. A non-empty project limits the
// result to that project key. Files that fail to read or decode are skipped.
func (v Vault) ListTasks(project string) ([]model.Task, error) {
	paths, err := markdownFiles(v.TasksDir())
	if err != nil {
		return nil, err
	}
	project = strings.TrimSpace(project)
	out := make([]model.Task, 0, len(paths))
	for _, path := range paths {
		fm, _, err := v.readTask(path)
		if err != nil {
			v.logger().Debug("skipping task file", "path", path, "err", err)
			continue
		}
		if project != "" && fm.Project != project {
			continue
		}
		out = append(out, fm.toTask(path))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Updated.After(out[j].Updated)
	})
	return out, nil
}

// FindTaskPath scans every task file for id. This is the only id lookup, so each single-task
// mutation reads the whole tasks subtree.
func (v Vault) FindTaskPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errValidation("id", "must not be empty")
	}
	paths, err := markdownFiles(v.TasksDir())
	if err != nil {
		return "", err
	}
	for _, path := range paths {
		fm, _, err := v.readTask(path)
		if err == nil && fm.ID == id {
			return path, nil
		}
	}
	return "", errNotFound("task", id)
}

// GetTask returns the decoded task and its body.
func (v Vault) GetTask(id string) (model.Task, string, error) {
	path, err := v.FindTaskPath(id)
	if err != nil {
		return model.Task{}, "", err
	}
	fm, body, err := v.readTask(path)
	if err != nil {
		return model.Task{}, "", err
	}
	return fm.toTask(path), string(body), nil
}

func (v Vault) SetStatus(id string, status model.Status) error {
	_, err := v.updateTask(id, func(fm *taskFrontmatter) error {
		fm.Status = string(status)
		return nil
	})
	return err
}

// CycleStatus advances the task's status one step in dir and returns the new status.
func (v Vault) CycleStatus(id string, dir model.Direction) (model.Status, error) {
	task, _, err := v.GetTask(id)
	if err != nil {
		return "", err
	}
	next := task.Status.Advance(dir)
	if err := v.SetStatus(id, next); err != nil {
		return "", err
	}
	return next, nil
}

// SetDue stores text verbatim. Blank text clears the due date.
func (v Vault) SetDue(id, text string) error {
	_, err := v.updateTask(id, func(fm *taskFrontmatter) error {
		text = strings.TrimSpace(text)
		if text == "" {
			fm.Due = nil
			return nil
		}
		fm.Due = &text
		return nil
	})
	return err
}

// SetTagsFromDelimitedList replaces the task's tags with the comma or whitespace separated
// entries of text. A leading '+' on an entry is dropped.
func (v Vault) SetTagsFromDelimitedList(id, text string) error {
	_, err := v.updateTask(id, func(fm *taskFrontmatter) error {
		fm.Tags = ParseTagList(text)
		return nil
	})
	return err
}

// RenameTitle updates title and key, then tries to move the file so its slug segment matches.
// The metadata write is the operation; a failed rename is logged and otherwise ignored.
func (v Vault) RenameTitle(id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errValidation("title", "must not be empty")
	}
	slug := Slugify(title)
	path, err := v.updateTask(id, func(fm *taskFrontmatter) error {
		fm.Title = title
		fm.Key = slug
		return nil
	})
	if err != nil {
		return err
	}

	dst, ok := renamedTaskPath(path, slug)
	if !ok || dst == path {
		return nil
	}
	if err := os.Rename(path, dst); err != nil {
		v.logger().Warn("task file rename failed", "from", path, "to", dst, "err", err)
	}
	return nil
}

// renamedTaskPath swaps the slug segment of a <date>--<slug>--<id>.md filename. Stems with
// fewer than three segments are left alone.
func renamedTaskPath(path, slug string) (string, bool) {
	stem := strings.TrimSuffix(filepath.Base(path), ".md")
	parts := strings.Split(stem, "--")
	if len(parts) < 3 {
		return "", false
	}
	date, id := parts[0], parts[len(parts)-1]
	return filepath.Join(filepath.Dir(path), taskFileName(date, slug, id)), true
}

// ParseTagList splits on commas and whitespace, trims, drops empties and a leading '+'.
func ParseTagList(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	return normalizeTags(fields)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func normalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimPrefix(strings.TrimSpace(t), "+")
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (v Vault) readTask(path string) (taskFrontmatter, []byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return taskFrontmatter{}, nil, errIO("read", path, err)
	}
	return decodeTaskFile(path, b)
}

// updateTask is the read-modify-write cycle shared by every single-field mutation: locate by
// id, decode, apply fn, stamp updated, encode and rewrite the whole file with the body intact.
func (v Vault) updateTask(id string, fn func(fm *taskFrontmatter) error) (string, error) {
	path, err := v.FindTaskPath(id)
	if err != nil {
		return "", err
	}
	fm, body, err := v.readTask(path)
	if err != nil {
		return "", err
	}
	if err := fn(&fm); err != nil {
		return "", err
	}
	fm.Updated = formatTimestamp(v.now())
	b, err := joinFrontmatter(fm, body)
	if err != nil {
		return "", &DecodeError{Path: path, Err: err}
	}
	if err := writeRecord(path, b); err != nil {
		return "", err
	}
	return path, nil
}
