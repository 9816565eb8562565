package app

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/specialistvlad/clovergrid/internal/metrics"
	"github.com/specialistvlad/clovergrid/internal/project"
	"github.com/specialistvlad/clovergrid/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{Tasks: []string{"test"}})
	assert.ErrorContains(t, err, "ProjectPath")

	_, err = NewConfig(Config{ProjectPath: "build.hcl"})
	assert.ErrorContains(t, err, "at least one task")

	cfg, err := NewConfig(Config{ProjectPath: "build.hcl", ListTasks: true})
	require.NoError(t, err)
	assert.True(t, cfg.ListTasks)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestListTasks(t *testing.T) {
	// --- Arrange ---
	p := project.New("demo", t.TempDir())
	for _, def := range []struct{ name, group, desc string }{
		{"test", "verification", "Runs the unit tests."},
		{"compileJava", "build", ""},
		{"scratch", "", "Ad-hoc."},
	} {
		tk := task.New(def.name, task.KindExec)
		tk.Group = def.group
		tk.Description = def.desc
		require.NoError(t, p.Tasks.Register(tk))
	}
	a := &App{project: p}
	var out bytes.Buffer

	// --- Act ---
	err := a.ListTasks(&out)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, `Project 'demo'
Plugins: java
Source sets: main, test

Other tasks
-----------
scratch - Ad-hoc.

Build tasks
-----------
compileJava

Verification tasks
------------------
test - Runs the unit tests.

`, out.String())
}

func TestHandler(t *testing.T) {
	a := &App{logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), metrics: metrics.New()}
	h := a.handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clovergrid_instrumentation_activations_total 0")
}

func TestGroupOf(t *testing.T) {
	assert.Equal(t, "verification", groupOf(task.KindTest))
	assert.Equal(t, "publishing", groupOf(task.KindPublish))
	assert.Equal(t, "build", groupOf(task.KindExec))
}
