// Package executor runs candidate commands. Execute is the only place in
// the program where model-generated text is handed to a subprocess; the
// string is passed to the shell exactly once and never re-interpreted.
package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/ports"
)

// LocalExecutor runs commands on the host shell.
type LocalExecutor struct {
	shell  string
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// New builds an executor; shell defaults to $SHELL, then /bin/sh.
func New(shell string) *LocalExecutor {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &LocalExecutor{
		shell:  shell,
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
	}
}

// NewWithIO builds an executor with captured streams, for tests.
func NewWithIO(shell string, stdout, stderr io.Writer) *LocalExecutor {
	e := New(shell)
	e.stdout = stdout
	e.stderr = stderr
	e.stdin = nil
	return e
}

// Execute implements ports.Executor. Output streams pass straight through;
// only the exit status is captured. Once started, the command runs to
// completion.
func (e *LocalExecutor) Execute(ctx context.Context, command string) (domain.ExecutionResult, error) {
	cmd := exec.CommandContext(ctx, e.shell, "-c", command)
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	cmd.Stdin = e.stdin

	start := time.Now()
	err := cmd.Run()
	result := domain.ExecutionResult{
		DurationMS: time.Since(start).Milliseconds(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.Ran = true
		result.ExitCode = exitErr.ExitCode()
		result.Err = err
		return result, nil
	}
	if err != nil {
		result.Err = err
		return result, err
	}
	result.Ran = true
	result.ExitCode = 0
	return result, nil
}

var _ ports.Executor = (*LocalExecutor)(nil)
