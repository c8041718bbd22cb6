package ex

import (
	"errors"
	"testing"

	"tm-cli/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"new", []string{"new"}},
		{`new "Buy milk"  +a`, []string{"new", "Buy milk", "+a"}},
		{"new\tx", []string{"new", "x"}},
		{`new a"b c"d`, []string{"new", "ab cd"}},
		{`new "unterminated title`, []string{"new", "unterminated title"}},
		{`new "" x`, []string{"new", "x"}},
		{`new \"x\"`, []string{"new", `\x\`}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tokenize(tt.in), tt.in)
	}
}

func TestParse_New(t *testing.T) {
	t.Parallel()

	cmd, err := Parse(`new "Buy milk" project:home +errand due:2025-09-01`)
	require.NoError(t, err)
	assert.Equal(t, New{
		Title:   "Buy milk",
		Project: strptr("home"),
		Tags:    []string{"errand"},
		Due:     strptr("2025-09-01"),
	}, cmd)

	cmd, err = Parse(`:new +a first second + project:`)
	require.NoError(t, err)
	assert.Equal(t, New{Title: "first", Tags: []string{"a"}}, cmd)
}

func TestParse_NewWithoutTitleFails(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"new", "new +tag project:x", `new ""`} {
		_, err := Parse(line)
		require.Error(t, err, line)
		assert.True(t, errors.Is(err, store.ErrValidation), line)
		var exErr *Error
		assert.True(t, errors.As(err, &exErr))
	}
}

func TestParse_Status(t *testing.T) {
	t.Parallel()

	cmd, err := Parse("status done")
	require.NoError(t, err)
	assert.Equal(t, Status{ID: nil, Set: SetDone}, cmd)

	cmd, err = Parse("status 0190abc in-progress")
	require.NoError(t, err)
	assert.Equal(t, Status{ID: strptr("0190abc"), Set: SetDoing}, cmd)

	for word, want := range map[string]StatusSet{
		"todo": SetTodo, "doing": SetDoing, "in_progress": SetDoing,
		"done": SetDone, "next": SetNext, "prev": SetPrev,
	} {
		cmd, err := Parse("status " + word)
		require.NoError(t, err, word)
		assert.Equal(t, want, cmd.(Status).Set, word)
	}

	_, err = Parse("status")
	assert.EqualError(t, err, "usage: :status [<id>] (todo|doing|done|next|prev)")
	_, err = Parse("status later")
	assert.EqualError(t, err, "unknown status 'later'")
	_, err = Parse("status abc later")
	assert.True(t, errors.Is(err, store.ErrValidation))
}

func TestParse_Open(t *testing.T) {
	t.Parallel()

	cmd, err := Parse("open project:home")
	require.NoError(t, err)
	assert.Equal(t, OpenProject{Key: "home"}, cmd)

	cmd, err = Parse("open work")
	require.NoError(t, err)
	assert.Equal(t, OpenProject{Key: "work"}, cmd)

	cmd, err = Parse("open project:")
	require.NoError(t, err)
	assert.Equal(t, OpenProject{}, cmd)

	cmd, err = Parse("open")
	require.NoError(t, err)
	assert.Equal(t, OpenProject{}, cmd)
}

func TestParse_ProjectNew(t *testing.T) {
	t.Parallel()

	cmd, err := Parse(`project.new "Home Renovation" +house +q3`)
	require.NoError(t, err)
	assert.Equal(t, ProjectNew{Title: "Home Renovation", Tags: []string{"house", "q3"}}, cmd)

	cmd, err = Parse(`project.new +house Garden`)
	require.NoError(t, err)
	assert.Equal(t, ProjectNew{Title: "Garden", Tags: []string{"house"}}, cmd)

	_, err = Parse("project.new +house")
	assert.EqualError(t, err, ":project.new requires a title")
}

func TestParse_ConfigReloadAndUnknown(t *testing.T) {
	t.Parallel()

	cmd, err := Parse("  :config.reload  ")
	require.NoError(t, err)
	assert.Equal(t, ConfigReload{}, cmd)

	_, err = Parse("config.reload now")
	assert.EqualError(t, err, "unknown command 'config.reload'")

	_, err = Parse("delete 42")
	assert.EqualError(t, err, "unknown command 'delete'")

	_, err = Parse("   ")
	assert.EqualError(t, err, "empty command")
	_, err = Parse(":")
	assert.EqualError(t, err, "empty command")
}

func TestParse_QuotesOnlyIsEmpty(t *testing.T) {
	t.Parallel()

	for _, line := range []string{`""`, `:""`, `"" ""`} {
		_, err := Parse(line)
		assert.EqualError(t, err, "empty command", line)
		assert.ErrorIs(t, err, store.ErrValidation, line)
	}
}
