package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Tasks(t *testing.T) {
	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	cfg, shouldExit, err := Parse([]string{"-p", "proj", "--log-level", "DEBUG", "--continue", "test", "cloverReport"}, out)

	// --- Assert ---
	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "proj", cfg.ProjectPath)
	assert.Equal(t, []string{"test", "cloverReport"}, cfg.Tasks)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.ContinueOnFailure)
	assert.False(t, cfg.DryRun)
}

func TestParse_TasksSubcommand(t *testing.T) {
	cfg, shouldExit, err := Parse([]string{"tasks", "--project", "dir", "--metrics-port", "9090"}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.True(t, cfg.ListTasks)
	assert.Equal(t, "dir", cfg.ProjectPath)
	assert.Equal(t, 9090, cfg.MetricsPort)
}

func TestParse_ExitCleanly(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_NoTasksIsUsageError(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse(nil, out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Equal(t, "at least one task name is required", exitErr.Message)
	assert.False(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"--bogus", "test"}, wantMsg: "unknown flag: --bogus"},
		{name: "bad log format", args: []string{"--log-format", "xml", "test"}, wantMsg: "invalid log-format"},
		{name: "bad log level", args: []string{"--log-level", "trace", "test"}, wantMsg: "invalid log-level"},
		{name: "negative port", args: []string{"--metrics-port", "-1", "test"}, wantMsg: "invalid metrics-port"},
		{name: "empty project", args: []string{"-p", "", "test"}, wantMsg: "ProjectPath is a required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
