package print

import (
	"bytes"
	"context"
	"testing"

	"github.com/specialistvlad/clovergrid/internal/registry"
	"github.com/specialistvlad/clovergrid/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	// --- Arrange ---
	r := registry.New()
	(&Module{}).Register(r)
	tt, ok := r.TaskType("print")
	require.True(t, ok)

	var out bytes.Buffer
	a, err := tt.NewAction(&registry.Env{Stdout: &out}, &Input{Message: "hello"})
	require.NoError(t, err)

	// --- Act ---
	err = a.Execute(context.Background(), task.New("hello", task.KindExec))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "      hello\n", out.String())
}
