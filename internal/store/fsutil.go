package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// atomicWriteFile writes b to a temp file in dir and renames it over path, so readers never
// observe a half-written record.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func writeRecord(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errIO("mkdir", dir, err)
	}
	// Leading dot keeps in-flight temp files out of markdown scans.
	if err := atomicWriteFile(dir, ".tm-*.tmp", path, b, 0o644); err != nil {
		return errIO("write", path, err)
	}
	return nil
}

// markdownFiles walks root and returns every *.md file below it. A missing root is an empty
// result, and unreadable subdirectories are skipped rather than failing the walk.
func markdownFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || filepath.Ext(path) != ".md" {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errIO("scan", root, err)
	}
	return out, nil
}
