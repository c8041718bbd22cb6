package tui

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tm-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// vaultChangedMsg reports that a record file in the vault was written, renamed or removed by
// someone other than this session.
type vaultChangedMsg struct{}

type watchErrMsg struct{ err error }

// reloadTickMsg drives polling when no file watcher could be started.
type reloadTickMsg struct{}

func tickReload() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

// newVaultWatcher watches projects/ and every directory under tasks/. fsnotify is not recursive,
// so month directories created later are added as they appear.
func newVaultWatcher(v store.Vault) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dirs, err := watchDirs(v)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	return w, nil
}

func watchDirs(v store.Vault) ([]string, error) {
	dirs := []string{v.ProjectsDir()}
	err := filepath.WalkDir(v.TasksDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// addTree watches dir and every directory below it.
func addTree(w *fsnotify.Watcher, dir string) []string {
	var added []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && w.Add(path) == nil {
			added = append(added, path)
		}
		return nil
	})
	return added
}

// waitForChange blocks until the next relevant event. Re-issue it after every vaultChangedMsg.
func waitForChange(w *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Op.Has(fsnotify.Create) {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						// MkdirAll can create year and month in one go; files may land before the
						// watch is added.
						addTree(w, ev.Name)
						return vaultChangedMsg{}
					}
				}
				if ev.Op.Has(fsnotify.Chmod) || !strings.HasSuffix(ev.Name, ".md") {
					continue
				}
				return vaultChangedMsg{}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}
