package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		wantMeta string
		wantBody string
		wantErr  bool
	}{
		{name: "meta and body", in: "---\nid: a\n---\nhello\n", wantMeta: "id: a", wantBody: "hello\n"},
		{name: "blank line body", in: "---\nid: a\n---\n\n", wantMeta: "id: a", wantBody: "\n"},
		{name: "no trailing newline", in: "---\nid: a\n---", wantMeta: "id: a", wantBody: ""},
		{name: "body with delimiter lines", in: "---\nid: a\n---\nx\n---\ny\n", wantMeta: "id: a", wantBody: "x\n---\ny\n"},
		{name: "dashes inside yaml", in: "---\ntitle: ----x\n---\n", wantMeta: "title: ----x", wantBody: ""},
		{name: "empty meta", in: "---\n---\nbody", wantMeta: "", wantBody: "body"},
		{name: "missing opening", in: "id: a\n---\n", wantErr: true},
		{name: "missing closing", in: "---\nid: a\n", wantErr: true},
		{name: "empty file", in: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta, body, err := splitFrontmatter([]byte(tc.in))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantMeta, string(meta))
			assert.Equal(t, tc.wantBody, string(body))
		})
	}
}

func TestJoinFrontmatter_RoundTrip(t *testing.T) {
	t.Parallel()

	due := "2025-09-01"
	in := taskFrontmatter{
		ID:       "0190-abc",
		Key:      "buy-milk",
		Title:    "Buy milk",
		Status:   "doing",
		Project:  "home",
		Tags:     []string{"errand"},
		Priority: "none",
		Due:      &due,
		Created:  formatTimestamp(fixedNow()),
		Updated:  formatTimestamp(fixedNow()),
	}
	body := "# Notes\n\n---\nnot frontmatter\n"
	b, err := joinFrontmatter(in, []byte(body))
	require.NoError(t, err)
	require.True(t, len(b) > 4 && string(b[:4]) == "---\n")

	got, gotBody, err := decodeTaskFile("x.md", b)
	require.NoError(t, err)
	assert.Equal(t, body, string(gotBody))
	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Tags, got.Tags)
	require.NotNil(t, got.Due)
	assert.Equal(t, due, *got.Due)
	assert.Nil(t, got.Parent)
	assert.True(t, fixedNow().Equal(parseTimestamp(got.Created)))
}

func TestDecodeTaskFile_KeepsUnknownKeys(t *testing.T) {
	t.Parallel()

	src := "---\nid: t1\ntitle: A\nstatus: todo\nestimate: 3h\n---\nbody\n"
	fm, body, err := decodeTaskFile("t1.md", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "3h", fm.Extra["estimate"])

	b, err := joinFrontmatter(fm, body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "estimate: 3h")
}

func TestDecodeTaskFile_Errors(t *testing.T) {
	t.Parallel()

	for name, src := range map[string]string{
		"no envelope": "just text\n",
		"bad yaml":    "---\nid: [unclosed\n---\n",
		"missing id":  "---\ntitle: orphan\n---\n",
	} {
		_, _, err := decodeTaskFile(name, []byte(src))
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrDecode), name)
		var de *DecodeError
		assert.True(t, errors.As(err, &de), name)
	}
}

func TestToTask_LenientStatusAndTags(t *testing.T) {
	t.Parallel()

	fm, _, err := decodeTaskFile("t.md", []byte("---\nid: t\nstatus: in-progress\n---\n"))
	require.NoError(t, err)
	task := fm.toTask("t.md")
	assert.Equal(t, "doing", string(task.Status))
	assert.NotNil(t, task.Tags)
	assert.True(t, task.Created.IsZero())

	fm, _, err = decodeTaskFile("t.md", []byte("---\nid: t\nstatus: blocked\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, "todo", string(fm.toTask("t.md").Status))
}
