// Package testutil runs whole builds in a temporary project directory with
// fake external tools and captured logs.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/clovergrid/internal/app"
	"github.com/specialistvlad/clovergrid/internal/clover/clovertest"
	"github.com/specialistvlad/clovergrid/internal/command"
	"github.com/specialistvlad/clovergrid/internal/command/commandtest"
	"github.com/specialistvlad/clovergrid/internal/hcl"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Harness is a project directory plus the fakes a build runs against.
type Harness struct {
	Dir    string
	Runner *commandtest.FakeRunner
	Tool   *clovertest.FakeTool

	mu      sync.Mutex
	journal []string
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// NewHarness writes files into a fresh temporary directory. Every command run
// through the fake runner and every call to the fake tool is journaled.
func NewHarness(t *testing.T, files map[string]string) *Harness {
	t.Helper()
	h := &Harness{Dir: t.TempDir()}
	for name, content := range files {
		h.WriteFile(t, name, content)
	}

	h.Runner = &commandtest.FakeRunner{
		Hook: func(cmd command.Cmd) (command.Result, error) {
			h.record("cmd:" + cmd.String())
			return command.Result{}, nil
		},
	}
	h.Tool = &clovertest.FakeTool{Journal: h.record}
	return h
}

// WriteFile creates a file relative to the project directory.
func (h *Harness) WriteFile(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(h.Dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// Journal returns everything recorded so far, in order.
func (h *Harness) Journal() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.journal...)
}

func (h *Harness) record(entry string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.journal = append(h.journal, entry)
}

// Run builds an app over the harness directory and runs it. Startup panics
// are returned as errors.
func (h *Harness) Run(t *testing.T, cfg app.Config) *HarnessResult {
	t.Helper()
	return h.RunWithContext(context.Background(), t, cfg)
}

// RunWithContext is Run with a caller-provided context.
func (h *Harness) RunWithContext(ctx context.Context, t *testing.T, cfg app.Config) (result *HarnessResult) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	result = &HarnessResult{}
	t.Cleanup(func() {
		if os.Getenv("CLOVERGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	if cfg.ProjectPath == "" {
		cfg.ProjectPath = h.Dir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("application startup panicked: %v", r)
			result.Output = logBuffer.String()
		}
	}()

	a := app.NewApp(logBuffer, &cfg, hcl.NewLoader(), app.Deps{Runner: h.Runner, Tool: h.Tool})
	result.App = a
	result.Err = a.Run(ctx)
	result.Output = logBuffer.String()
	return result
}
