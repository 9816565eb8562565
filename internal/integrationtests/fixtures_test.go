package integrationtests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/clovergrid/internal/clover"
	"github.com/specialistvlad/clovergrid/internal/testutil"
	"github.com/stretchr/testify/require"
)

const javaProject = `
project "demo" {
  plugins = ["java", "clover"]
}

task "exec" "compileJava" {
  arguments {
    command = ["javac", "-d", "${project.build_dir}/classes/main"]
  }
}

task "test" "test" {
  depends_on = ["compileJava"]
  arguments {
    command = ["java", "org.junit.runner.JUnitCore"]
  }
}
`

// newJavaHarness lays out a project with sources and compiled classes. The
// fake tool overwrites the classes on instrumentation, like the real one.
func newJavaHarness(t *testing.T, extra map[string]string) *testutil.Harness {
	t.Helper()
	files := map[string]string{
		"build.hcl":                             javaProject,
		"src/main/java/com/acme/App.java":       "class App {}",
		"build/classes/main/com/acme/App.class": "original",
	}
	for k, v := range extra {
		files[k] = v
	}
	h := testutil.NewHarness(t, files)
	h.Tool.OnInstrument = func(req clover.InstrumentRequest) {
		_ = os.MkdirAll(filepath.Join(req.ClassesDir, "com/acme"), 0o755)
		_ = os.WriteFile(filepath.Join(req.ClassesDir, "com/acme/App.class"), []byte("instrumented"), 0o644)
	}
	return h
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}
