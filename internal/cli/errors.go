package cli

import (
	"errors"

	"tm-cli/internal/store"
)

// Exit codes. Anything not listed exits 1.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitValidation = 2
	ExitNotFound   = 3
)

var errDoctorFailed = errors.New("vault has errors")

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, store.ErrValidation):
		return ExitValidation
	case errors.Is(err, store.ErrNotFound):
		return ExitNotFound
	default:
		return ExitError
	}
}
