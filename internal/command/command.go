// Package command runs external processes for task actions and the coverage tool adapter.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Cmd describes one process invocation.
type Cmd struct {
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is appended to the current process environment.
	Env []string
	// Stdout and Stderr, if set, also receive the process output as it is produced.
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command line for logs.
func (c Cmd) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result represents the result of executing a command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes commands. A non-zero exit status is reported through
// Result, not as an error; errors mean the process could not be run at all.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) (Result, error)
}

// ExitError is returned by Check for a command that ran but failed.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Check runs cmd and converts a non-zero exit status into an *ExitError.
func Check(ctx context.Context, r Runner, cmd Cmd) error {
	res, err := r.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("running %q: %w", cmd.Name, err)
	}
	if !res.Success() {
		return &ExitError{Command: cmd.String(), ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// ExecRunner executes real processes with os/exec.
type ExecRunner struct {
	// BaseEnv is the environment every command starts from. Nil means os.Environ().
	BaseEnv []string
}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command and returns the result.
func (r *ExecRunner) Run(ctx context.Context, c Cmd) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 || r.BaseEnv != nil {
		base := r.BaseEnv
		if base == nil {
			base = cmd.Environ()
		}
		cmd.Env = append(append([]string(nil), base...), c.Env...)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = tee(&stdout, c.Stdout)
	cmd.Stderr = tee(&stderr, c.Stderr)

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}

func tee(buf io.Writer, extra io.Writer) io.Writer {
	if extra == nil {
		return buf
	}
	return io.MultiWriter(buf, extra)
}

// Ensure ExecRunner implements Runner.
var _ Runner = (*ExecRunner)(nil)
