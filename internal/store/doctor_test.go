package store

import (
	"os"
	"path/filepath"
	"testing"

	"tm-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueCodes(rep DoctorReport) []string {
	codes := make([]string, 0, len(rep.Issues))
	for _, it := range rep.Issues {
		codes = append(codes, it.Code)
	}
	return codes
}

func TestDoctor_CleanVault(t *testing.T) {
	v := newTestVault(t)
	_, err := v.CreateProject(model.ProjectNew{Title: "Home"})
	require.NoError(t, err)
	_, err = v.CreateTask(model.TaskNew{Title: "sweep", Project: "home"})
	require.NoError(t, err)
	_, err = v.CreateTask(model.TaskNew{Title: "triage", Project: model.DefaultProject})
	require.NoError(t, err)

	rep, err := v.Doctor()
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Tasks)
	assert.Equal(t, 1, rep.Projects)
	assert.Empty(t, rep.Issues)
	assert.NotNil(t, rep.Issues)
	assert.False(t, rep.HasErrors())
}

func TestDoctor_ReportsProblems(t *testing.T) {
	v := newTestVault(t)
	id, err := v.CreateTask(model.TaskNew{Title: "orphan", Project: "nowhere"})
	require.NoError(t, err)

	path, err := v.FindTaskPath(id)
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)

	// Same record under a hand-picked name: duplicate id plus a name mismatch.
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "copy.md"), b, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(v.TasksDir(), "broken.md"), []byte("no frontmatter"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(v.ProjectsDir(), "renamed.md"),
		[]byte("---\nkey: original\ntitle: Original\n---\n"), 0o644))

	rep, err := v.Doctor()
	require.NoError(t, err)
	assert.True(t, rep.HasErrors())

	codes := issueCodes(rep)
	assert.ElementsMatch(t, []string{
		"decode_failed",
		"duplicate_id",
		"filename_mismatch",
		"unknown_project",
		"unknown_project",
		"project_key_mismatch",
	}, codes)
	assert.Equal(t, DoctorIssueLevelError, rep.Issues[0].Level)
	assert.Equal(t, DoctorIssueLevelWarn, rep.Issues[len(rep.Issues)-1].Level)
}
