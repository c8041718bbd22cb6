package store

import (
	"errors"
	"os"
	"sort"
	"strings"

	"tm-cli/internal/model"
)

// CreateProject writes projects/<slug>.md and returns the slug. An existing project with the
// same slug is overwritten.
func (v Vault) CreateProject(in model.ProjectNew) (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", errValidation("title", "must not be empty")
	}
	key := Slugify(title)
	if key == "" {
		return "", errValidation("title", "has no characters usable in a project key")
	}
	now := v.now()
	fm := projectFrontmatter{
		Key:     key,
		Title:   title,
		Status:  model.ProjectStatusActive,
		Tags:    normalizeTags(in.Tags),
		Created: formatTimestamp(now),
		Updated: formatTimestamp(now),
	}
	b, err := joinFrontmatter(fm, nil)
	if err != nil {
		return "", &DecodeError{Err: err}
	}
	if err := writeRecord(v.projectPath(key), b); err != nil {
		return "", err
	}
	return key, nil
}

// ListProjects returns every decodable project, newest update first and then by title.
func (v Vault) ListProjects() ([]model.Project, error) {
	paths, err := markdownFiles(v.ProjectsDir())
	if err != nil {
		return nil, err
	}
	out := make([]model.Project, 0, len(paths))
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			v.logger().Debug("skipping project file", "path", path, "err", err)
			continue
		}
		fm, _, err := decodeProjectFile(path, b)
		if err != nil {
			v.logger().Debug("skipping project file", "path", path, "err", err)
			continue
		}
		out = append(out, fm.toProject(path))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Updated.Equal(out[j].Updated) {
			return out[i].Updated.After(out[j].Updated)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

// ProjectKeys returns the keys of ListProjects sorted ascending.
func (v Vault) ProjectKeys() ([]string, error) {
	projects, err := v.ListProjects()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(projects))
	for _, p := range projects {
		keys = append(keys, p.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetProject reads projects/<key>.md directly. A missing file is (nil, nil).
func (v Vault) GetProject(key string) (*model.Project, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	path := v.projectPath(key)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errIO("read", path, err)
	}
	fm, _, err := decodeProjectFile(path, b)
	if err != nil {
		return nil, err
	}
	p := fm.toProject(path)
	return &p, nil
}
