package exec

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/clovergrid/internal/command"
	"github.com/specialistvlad/clovergrid/internal/command/commandtest"
	"github.com/specialistvlad/clovergrid/internal/project"
	"github.com/specialistvlad/clovergrid/internal/registry"
	"github.com/specialistvlad/clovergrid/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	tt, ok := r.TaskType("test")
	require.True(t, ok)
	assert.Equal(t, task.KindTest, tt.Kind)
	tt, ok = r.TaskType("exec")
	require.True(t, ok)
	assert.Equal(t, task.KindExec, tt.Kind)
	assert.NoError(t, r.ValidateRegistry(context.Background()))
}

func TestAction_Execute(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	runner := &commandtest.FakeRunner{}
	env := &registry.Env{Project: project.New("demo", root), Runner: runner}
	action, err := newAction(env, &Input{
		Command: []string{"java", "-cp", "lib", "Main"},
		Dir:     "sub",
		Env:     map[string]string{"B": "2", "A": "1"},
	})
	require.NoError(t, err)

	// --- Act ---
	err = action.Execute(context.Background(), task.New("test", task.KindTest))

	// --- Assert ---
	require.NoError(t, err)
	calls := runner.Recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "java", calls[0].Name)
	assert.Equal(t, []string{"-cp", "lib", "Main"}, calls[0].Args)
	assert.Equal(t, filepath.Join(root, "sub"), calls[0].Dir)
	assert.Equal(t, []string{"A=1", "B=2"}, calls[0].Env)
}

func TestAction_NonZeroExitFails(t *testing.T) {
	runner := &commandtest.FakeRunner{
		Results: map[string]command.Result{"gradle": {ExitCode: 3, Stderr: "boom"}},
	}
	env := &registry.Env{Project: project.New("demo", t.TempDir()), Runner: runner}
	action, err := newAction(env, &Input{Command: []string{"gradle"}})
	require.NoError(t, err)

	err = action.Execute(context.Background(), task.New("x", task.KindExec))

	var exitErr *command.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode)
}

func TestNewAction_EmptyCommand(t *testing.T) {
	_, err := newAction(&registry.Env{}, &Input{})
	assert.ErrorContains(t, err, "command must not be empty")
}
