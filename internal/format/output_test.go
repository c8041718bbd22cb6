package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Data  any `json:"data"`
	lines string
}

func (p payload) Text() string { return p.lines }

func write(t *testing.T, v any, format string, pretty bool) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, v, format, pretty))
	return buf.String()
}

func TestWrite_Text(t *testing.T) {
	p := payload{Data: 1, lines: "a\nb\n"}
	assert.Equal(t, "a\nb\n", write(t, p, "", false))
	assert.Equal(t, "", write(t, payload{}, "text", false))
	assert.Equal(t, "42\n", write(t, 42, "text", false))
}

func TestWrite_JSON(t *testing.T) {
	p := payload{Data: map[string]any{"id": "x"}, lines: "ignored"}
	assert.Equal(t, `{"data":{"id":"x"}}`+"\n", write(t, p, "json", false))
}

func TestWrite_EDN(t *testing.T) {
	v := map[string]any{
		"id":     "t-1",
		"count":  3,
		"ratio":  0.5,
		"tags":   []string{"a", "b"},
		"due":    nil,
		"ok":     true,
		"my key": "v",
	}
	got := write(t, v, "edn", false)
	assert.Equal(t, `{:count 3 :due nil :id "t-1" :my-key "v" :ok true :ratio 0.5 :tags ["a" "b"]}`+"\n", got)
}

func TestWrite_EDNPretty(t *testing.T) {
	got := write(t, map[string]any{"a": []int{1}, "b": map[string]any{}}, "edn", true)
	assert.Equal(t, "{\n  :a [\n    1\n  ]\n  :b {}\n}\n", got)
}

func TestWrite_YAML(t *testing.T) {
	got := write(t, payload{Data: map[string]any{"n": 7, "title": "x"}}, "yaml", false)
	assert.Equal(t, "data:\n  n: 7\n  title: x\n", got)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, 1, "xml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
