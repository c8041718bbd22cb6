package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// newTaskID returns a UUIDv7 string. v7 ids embed a millisecond timestamp in their leading
// bits, so lexical order follows creation order.
func newTaskID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Slugify turns a title into the lowercase, hyphenated form used for project keys and task
// filenames.
func Slugify(title string) string {
	return slug.Make(strings.TrimSpace(title))
}
