package domain

import (
	"errors"
	"fmt"
)

// Transport and pipeline sentinels. Transport failures abort the current
// query; they are never retried internally.
var (
	ErrTimeout          = errors.New("model request timed out")
	ErrConnectionFailed = errors.New("cannot reach model backend")
	ErrEmptyResponse    = errors.New("model returned an empty response")
	ErrEmptyCommand     = errors.New("model output sanitized to an empty command")
)

// BackendError carries a logical error reported by the model server,
// surfaced verbatim to the user.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error: %s", e.Message)
}

// ExitError requests a specific process exit code, used to propagate the
// exit status of an executed command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}
