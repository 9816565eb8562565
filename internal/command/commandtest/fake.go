// Package commandtest provides a recording command.Runner for tests.
package commandtest

import (
	"context"
	"sync"

	"github.com/specialistvlad/clovergrid/internal/command"
)

// FakeRunner records every command and answers from a per-name script.
type FakeRunner struct {
	mu    sync.Mutex
	Calls []command.Cmd
	// Results maps a command name to the result it returns. Unlisted
	// commands succeed with an empty result.
	Results map[string]command.Result
	// Errors maps a command name to a start-up error.
	Errors map[string]error
	// Hook, if set, answers every call instead of Results and Errors.
	Hook func(cmd command.Cmd) (command.Result, error)
}

// Run implements command.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd command.Cmd) (command.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, cmd)
	if f.Hook != nil {
		return f.Hook(cmd)
	}
	if err, ok := f.Errors[cmd.Name]; ok {
		return command.Result{}, err
	}
	res := f.Results[cmd.Name]
	if cmd.Stdout != nil && res.Stdout != "" {
		_, _ = cmd.Stdout.Write([]byte(res.Stdout))
	}
	return res, nil
}

// Recorded returns a snapshot of the recorded calls.
func (f *FakeRunner) Recorded() []command.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]command.Cmd(nil), f.Calls...)
}

var _ command.Runner = (*FakeRunner)(nil)
