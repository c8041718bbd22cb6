package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tm-cli/internal/model"
	"tm-cli/internal/session"
	"tm-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct{ got string }

func (c *fakeClipboard) WriteAll(s string) error {
	c.got = s
	return nil
}

func newTestVault(t *testing.T) store.Vault {
	t.Helper()
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	v := store.Vault{
		Dir: t.TempDir(),
		Clock: func() time.Time {
			now = now.Add(time.Second)
			return now
		},
	}
	require.NoError(t, v.InitDirs())
	return v
}

func newTestModel(t *testing.T, v store.Vault) (appModel, *fakeClipboard) {
	t.Helper()
	clip := &fakeClipboard{}
	m := newAppModel(Options{Vault: v, Clipboard: clip})
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return mm.(appModel), clip
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m appModel, msgs ...tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var mm tea.Model
		mm, cmd = m.Update(msg)
		m = mm.(appModel)
	}
	return m, cmd
}

func typeKeys(s string) []tea.Msg {
	out := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		out = append(out, runes(string(r)))
	}
	return out
}

func TestApp_ExCommandCreatesTask(t *testing.T) {
	v := newTestVault(t)
	m, _ := newTestModel(t, v)

	msgs := append([]tea.Msg{runes(":")}, typeKeys(`new "Buy milk" project:home`)...)
	msgs = append(msgs, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, msgs...)

	require.Len(t, m.st.Visible, 1)
	assert.Equal(t, "Buy milk", m.st.Visible[0].Title)
	assert.Equal(t, "home", m.st.Visible[0].Project)
	require.NotNil(t, m.st.Result)
	assert.Contains(t, m.st.Result.Text, "in project home")
	assert.Equal(t, session.ModeBrowsing, m.st.Mode)
}

func TestApp_StatusKeyAndView(t *testing.T) {
	v := newTestVault(t)
	_, err := v.CreateTask(model.TaskNew{Title: "Write report", Project: "work"})
	require.NoError(t, err)

	m, _ := newTestModel(t, v)
	m, _ = send(t, m, runes("x"))

	require.Len(t, m.st.Visible, 1)
	assert.Equal(t, model.StatusDoing, m.st.Visible[0].Status)
	assert.Equal(t, "status -> doing", m.st.Result.Text)

	out := m.View()
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "[doing]")
	assert.Contains(t, out, "status -> doing")
}

func TestApp_QuitKeyQuits(t *testing.T) {
	m, _ := newTestModel(t, newTestVault(t))
	_, cmd := send(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_CtrlCQuitsFromAnyMode(t *testing.T) {
	m, _ := newTestModel(t, newTestVault(t))
	m, _ = send(t, m, runes(":"))
	require.Equal(t, session.ModeExCommand, m.st.Mode)

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_FilterModeShowsInputLine(t *testing.T) {
	v := newTestVault(t)
	_, err := v.CreateTask(model.TaskNew{Title: "alpha", Project: "p"})
	require.NoError(t, err)
	_, err = v.CreateTask(model.TaskNew{Title: "beta", Project: "p"})
	require.NoError(t, err)

	m, _ := newTestModel(t, v)
	m, _ = send(t, m, append([]tea.Msg{runes("/")}, typeKeys("alp")...)...)

	require.Len(t, m.st.Visible, 1)
	assert.Contains(t, m.View(), "/alp")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, session.ModeBrowsing, m.st.Mode)
	assert.Equal(t, "alp", m.st.Filter)
}

func TestApp_BatchedRunesReachInputBuffers(t *testing.T) {
	v := newTestVault(t)
	_, err := v.CreateTask(model.TaskNew{Title: "abcd", Project: "p"})
	require.NoError(t, err)

	m, _ := newTestModel(t, v)
	m, _ = send(t, m, runes("/"), runes("abc"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d"), Paste: true})
	assert.Equal(t, "abcd", m.st.Filter)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = send(t, m, runes(":"), runes("new Milk"), tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.st.Result)
	assert.False(t, m.st.Result.IsErr, m.st.Result.Text)

	tasks, err := v.ListTasks("")
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestApp_BatchedRunesIgnoredWhileBrowsing(t *testing.T) {
	v := newTestVault(t)
	m, _ := newTestModel(t, v)

	m, _ = send(t, m, runes(":q"))
	assert.Equal(t, session.ModeBrowsing, m.st.Mode)
	assert.False(t, m.st.Quit)
}

func TestApp_EnterTogglesDetailWithBody(t *testing.T) {
	v := newTestVault(t)
	id, err := v.CreateTask(model.TaskNew{Title: "With notes", Project: "p"})
	require.NoError(t, err)

	path, err := v.FindTaskPath(id)
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(b, []byte("zucchini\n")...), 0o644))

	m, _ := newTestModel(t, v)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.showDetail)
	assert.Contains(t, m.View(), "zucchini")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.showDetail)
}

func TestApp_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t, newTestVault(t))
	m, _ = send(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "half page down")
}

func TestApp_CopyIDUsesClipboard(t *testing.T) {
	v := newTestVault(t)
	id, err := v.CreateTask(model.TaskNew{Title: "copy me", Project: "p"})
	require.NoError(t, err)

	m, clip := newTestModel(t, v)
	send(t, m, runes("y"))
	assert.Equal(t, id, clip.got)
}

func TestApp_VaultChangeKeepsCursorOnTask(t *testing.T) {
	v := newTestVault(t)
	first, err := v.CreateTask(model.TaskNew{Title: "first", Project: "p"})
	require.NoError(t, err)
	_, err = v.CreateTask(model.TaskNew{Title: "second", Project: "p"})
	require.NoError(t, err)

	m, _ := newTestModel(t, v)
	m, _ = send(t, m, runes("j"))
	task, ok := m.st.SelectedTask()
	require.True(t, ok)
	require.Equal(t, first, task.ID)

	// An outside edit moves "first" to the top of the updated-desc order.
	require.NoError(t, v.SetDue(first, "2025-10-01"))
	m, _ = send(t, m, reloadTickMsg{})

	task, ok = m.st.SelectedTask()
	require.True(t, ok)
	assert.Equal(t, first, task.ID)
	assert.Equal(t, 0, m.st.Selected)
}

func TestApp_StateRestoredAcrossLaunches(t *testing.T) {
	v := newTestVault(t)
	_, err := v.CreateProject(model.ProjectNew{Title: "Home"})
	require.NoError(t, err)
	id, err := v.CreateTask(model.TaskNew{Title: "sweep", Project: "home"})
	require.NoError(t, err)
	_, err = v.CreateTask(model.TaskNew{Title: "elsewhere", Project: "work"})
	require.NoError(t, err)

	m, _ := newTestModel(t, v)
	m, _ = send(t, m, runes("]"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "home", m.st.Project)
	m.saveState()

	again, _ := newTestModel(t, v)
	assert.Equal(t, "home", again.st.Project)
	assert.True(t, again.showDetail)
	task, ok := again.st.SelectedTask()
	require.True(t, ok)
	assert.Equal(t, id, task.ID)
}

func TestApp_RestoreDropsMissingProject(t *testing.T) {
	v := newTestVault(t)
	require.NoError(t, v.SaveTUIState(&store.TUIState{Project: "gone", Filter: "x"}))

	m, _ := newTestModel(t, v)
	assert.Empty(t, m.st.Project)
	assert.Equal(t, "x", m.st.Filter)
}

func TestApp_PickerView(t *testing.T) {
	v := newTestVault(t)
	for _, title := range []string{"Alpha", "Beta"} {
		_, err := v.CreateProject(model.ProjectNew{Title: title})
		require.NoError(t, err)
	}
	m, _ := newTestModel(t, v)
	m, _ = send(t, m, runes("O"), runes("j"))

	out := m.View()
	assert.Contains(t, out, "Open project")
	assert.Contains(t, out, "› beta")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "beta", m.st.Project)
}

func TestWatchDirs_IncludesMonthDirectories(t *testing.T) {
	v := newTestVault(t)
	_, err := v.CreateTask(model.TaskNew{Title: "t", Project: "p"})
	require.NoError(t, err)

	dirs, err := watchDirs(v)
	require.NoError(t, err)
	assert.Contains(t, dirs, v.ProjectsDir())
	assert.Contains(t, dirs, filepath.Join(v.TasksDir(), "2025", "09"))
}

func TestAddTree_WatchesNestedDirectories(t *testing.T) {
	v := newTestVault(t)
	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	month := filepath.Join(v.TasksDir(), "2031", "01")
	require.NoError(t, os.MkdirAll(month, 0o755))

	added := addTree(w, filepath.Join(v.TasksDir(), "2031"))
	assert.Contains(t, added, month)
	assert.Contains(t, w.WatchList(), month)
}

func TestRenderInputLine_KeepsTailVisible(t *testing.T) {
	line := renderInputLine(20, ":", strings.Repeat("a", 40)+"END")
	assert.Contains(t, line, "END")
}

func TestScrollWindow(t *testing.T) {
	assert.Equal(t, 0, scrollWindow(3, 5, 10))
	assert.Equal(t, 0, scrollWindow(2, 100, 10))
	assert.Equal(t, 45, scrollWindow(50, 100, 10))
	assert.Equal(t, 90, scrollWindow(99, 100, 10))
}
