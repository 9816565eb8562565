package integrationtests

import (
	"context"
	"testing"

	"github.com/specialistvlad/clovergrid/internal/app"
	"github.com/specialistvlad/clovergrid/internal/command"
	"github.com/specialistvlad/clovergrid/internal/scheduler"
	"github.com/specialistvlad/clovergrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ListTasks(t *testing.T) {
	h := newJavaHarness(t, nil)

	result := h.Run(t, app.Config{ListTasks: true})

	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "Plugins: java, clover\n")
	assert.Contains(t, result.Output, "Report tasks\n------------\ncloverReport - Generates Clover code coverage report.")
	assert.Contains(t, result.Output, "Verification tasks")
	assert.Contains(t, result.Output, "compileJava - Runs an external command.")
}

func TestBuild_DryRunExecutesNothing(t *testing.T) {
	h := newJavaHarness(t, nil)

	result := h.Run(t, app.Config{Tasks: []string{"cloverReport"}, DryRun: true})

	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, ":compileJava SKIPPED\n:test SKIPPED\n:cloverReport SKIPPED\n")
	assert.Empty(t, h.Journal())
}

func TestBuild_ContinueOnFailure(t *testing.T) {
	// --- Arrange ---
	h := testutil.NewHarness(t, map[string]string{
		"build.hcl": `
task "exec" "lint" {
  arguments {
    command = ["lint"]
  }
}

task "exec" "compile" {
  arguments {
    command = ["compile"]
  }
}

task "print" "done" {
  depends_on = ["lint", "compile"]
  arguments {
    message = "done"
  }
}
`,
	})
	h.Runner.Hook = func(cmd command.Cmd) (command.Result, error) {
		if cmd.Name == "lint" {
			return command.Result{ExitCode: 1, Stderr: "style"}, nil
		}
		return command.Result{}, nil
	}

	// --- Act ---
	result := h.Run(t, app.Config{Tasks: []string{"done"}, ContinueOnFailure: true})

	// --- Assert ---
	require.Error(t, result.Err)
	assert.ErrorContains(t, result.Err, "execution failed for lint")
	assert.Len(t, h.Runner.Recorded(), 2, "compile still runs after lint fails")
	assert.NotContains(t, result.Output, "      done")
}

func TestBuild_UnknownTask(t *testing.T) {
	h := newJavaHarness(t, nil)

	result := h.Run(t, app.Config{Tasks: []string{"deploy"}})

	assert.ErrorIs(t, result.Err, scheduler.ErrTaskNotFound)
}

func TestBuild_StartupErrorsPanic(t *testing.T) {
	testCases := []struct {
		name    string
		hcl     string
		wantErr string
	}{
		{
			name:    "unknown task type",
			hcl:     `task "gradle" "x" {}`,
			wantErr: `unknown task type "gradle"`,
		},
		{
			name: "bad arguments",
			hcl: `task "exec" "x" {
  arguments {
    commnd = ["ls"]
  }
}`,
			wantErr: "missing required argument \"command\"",
		},
		{
			name: "duplicate task",
			hcl: `task "print" "x" {
  arguments {
    message = "a"
  }
}
task "print" "x" {
  arguments {
    message = "b"
  }
}`,
			wantErr: "task already registered",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := testutil.NewHarness(t, map[string]string{"build.hcl": tc.hcl})
			result := h.Run(t, app.Config{Tasks: []string{"x"}})
			require.Error(t, result.Err)
			assert.ErrorContains(t, result.Err, "application startup panicked")
			assert.ErrorContains(t, result.Err, tc.wantErr)
		})
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	h := newJavaHarness(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := h.RunWithContext(ctx, t, app.Config{Tasks: []string{"test"}})

	assert.ErrorIs(t, result.Err, context.Canceled)
	assert.Empty(t, h.Journal())
}
