package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/marketplace/pkg/types"
)

// usageError marks a failure caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// userErrors are outcomes the person at the keyboard can fix.
var userErrors = []error{
	types.ErrValidation,
	types.ErrUsernameTaken,
	types.ErrNotFound,
	types.ErrReferenceNotFound,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrBusyTimeoutInvalid,
	types.ErrPasswordSchemeUnknown,
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, types.ErrStorageUnavailable) {
		return exitSysError
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return exitUserError
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	// cobra reports unknown subcommands and bad arg counts as plain errors.
	if msg := err.Error(); strings.HasPrefix(msg, "unknown command") || strings.Contains(msg, "arg(s)") {
		return exitUserError
	}
	return exitSysError
}
