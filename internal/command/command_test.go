package command

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecRunner_Success(t *testing.T) {
	skipOnWindows(t)
	var live bytes.Buffer

	res, err := NewExecRunner().Run(context.Background(), Cmd{Name: "echo", Args: []string{"hello"}, Stdout: &live})

	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, "hello\n", live.String())
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	skipOnWindows(t)

	res, err := NewExecRunner().Run(context.Background(), Cmd{Name: "sh", Args: []string{"-c", "echo oops >&2; exit 3"}})

	require.NoError(t, err)
	assert.False(t, res.Success())
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "oops\n", res.Stderr)
}

func TestExecRunner_DirAndEnv(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()

	res, err := NewExecRunner().Run(context.Background(), Cmd{
		Name: "sh",
		Args: []string{"-c", `pwd; echo "$CLOVERGRID_TEST_VALUE"`},
		Dir:  dir,
		Env:  []string{"CLOVERGRID_TEST_VALUE=42"},
	})

	require.NoError(t, err)
	assert.Contains(t, res.Stdout, "42")
}

func TestExecRunner_NotFound(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), Cmd{Name: "nonexistent-command-12345"})
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	skipOnWindows(t)
	r := NewExecRunner()

	assert.NoError(t, Check(context.Background(), r, Cmd{Name: "true"}))

	err := Check(context.Background(), r, Cmd{Name: "sh", Args: []string{"-c", "echo bad license >&2; exit 1"}})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode)
	assert.ErrorContains(t, err, "bad license")
}
