package store

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	projectsDirName = "projects"
	tasksDirName    = "tasks"
	stateDirName    = ".tm"
)

// Vault is a directory of Markdown records: projects/<key>.md and
// tasks/<YYYY>/<MM>/<date>--<slug>--<id>.md.
//
// Every query re-scans the relevant subtree; there is no index.
type Vault struct {
	Dir string

	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time

	// Logger receives skipped-file and best-effort rename diagnostics. Nil discards them.
	Logger *log.Logger
}

func (v Vault) now() time.Time {
	if v.Clock != nil {
		return v.Clock().UTC()
	}
	return time.Now().UTC()
}

func (v Vault) logger() *log.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return discardLogger
}

var discardLogger = log.New(io.Discard)

func (v Vault) ProjectsDir() string { return filepath.Join(v.Dir, projectsDirName) }
func (v Vault) TasksDir() string    { return filepath.Join(v.Dir, tasksDirName) }
func (v Vault) StateDir() string    { return filepath.Join(v.Dir, stateDirName) }

func (v Vault) projectPath(key string) string {
	return filepath.Join(v.ProjectsDir(), key+".md")
}

// taskPath builds tasks/<YYYY>/<MM>/<YYYY>-<MM>-<DD>--<slug>--<id>.md from the creation time.
func (v Vault) taskPath(created time.Time, slug, id string) string {
	created = created.UTC()
	return filepath.Join(
		v.TasksDir(),
		created.Format("2006"),
		created.Format("01"),
		taskFileName(created.Format("2006-01-02"), slug, id),
	)
}

func taskFileName(date, slug, id string) string {
	return date + "--" + slug + "--" + id + ".md"
}

// InitDirs creates projects/ and tasks/ under the vault root.
func (v Vault) InitDirs() error {
	for _, dir := range []string{v.ProjectsDir(), v.TasksDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errIO("mkdir", dir, err)
		}
	}
	return nil
}
