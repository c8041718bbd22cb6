package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tm-cli/internal/model"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Path    string           `json:"path,omitempty"`
	ID      string           `json:"id,omitempty"`
}

type DoctorReport struct {
	Tasks    int           `json:"tasks"`
	Projects int           `json:"projects"`
	Issues   []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor checks the vault for files the listing silently skips and for records that disagree
// with their file names. It only reads.
//
// Errors: undecodable records, task ids used by more than one file.
// Warnings: file name and frontmatter disagree, tasks pointing at a project with no record.
func (v Vault) Doctor() (DoctorReport, error) {
	var rep DoctorReport

	projectPaths, err := markdownFiles(v.ProjectsDir())
	if err != nil {
		return rep, err
	}
	projects := map[string]bool{}
	for _, path := range projectPaths {
		b, err := os.ReadFile(path)
		if err != nil {
			rep.add(DoctorIssueLevelError, "read_failed", err.Error(), path, "")
			continue
		}
		fm, _, err := decodeProjectFile(path, b)
		if err != nil {
			rep.add(DoctorIssueLevelError, "decode_failed", err.Error(), path, "")
			continue
		}
		rep.Projects++
		projects[fm.Key] = true
		if base := strings.TrimSuffix(filepath.Base(path), ".md"); base != fm.Key {
			rep.add(DoctorIssueLevelWarn, "project_key_mismatch",
				"file name "+base+" does not match key "+fm.Key, path, fm.Key)
		}
	}

	taskPaths, err := markdownFiles(v.TasksDir())
	if err != nil {
		return rep, err
	}
	seen := map[string]string{}
	for _, path := range taskPaths {
		fm, _, err := v.readTask(path)
		if err != nil {
			rep.add(DoctorIssueLevelError, "decode_failed", err.Error(), path, "")
			continue
		}
		rep.Tasks++
		if first, dup := seen[fm.ID]; dup {
			rep.add(DoctorIssueLevelError, "duplicate_id",
				"id also used by "+first, path, fm.ID)
		} else {
			seen[fm.ID] = path
		}
		if !strings.HasSuffix(strings.TrimSuffix(filepath.Base(path), ".md"), "--"+fm.ID) {
			rep.add(DoctorIssueLevelWarn, "filename_mismatch",
				"file name does not end with the task id", path, fm.ID)
		}
		if fm.Project != "" && fm.Project != model.DefaultProject && !projects[fm.Project] {
			rep.add(DoctorIssueLevelWarn, "unknown_project",
				"project "+fm.Project+" has no record", path, fm.ID)
		}
	}

	sort.SliceStable(rep.Issues, func(i, j int) bool {
		if rep.Issues[i].Level != rep.Issues[j].Level {
			return rep.Issues[i].Level == DoctorIssueLevelError
		}
		return rep.Issues[i].Path < rep.Issues[j].Path
	})
	if rep.Issues == nil {
		rep.Issues = []DoctorIssue{}
	}
	return rep, nil
}

func (r *DoctorReport) add(level DoctorIssueLevel, code, msg, path, id string) {
	r.Issues = append(r.Issues, DoctorIssue{Level: level, Code: code, Message: msg, Path: path, ID: id})
}
