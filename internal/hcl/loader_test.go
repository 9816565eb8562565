package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestLoader_FullProject(t *testing.T) {
	// --- Arrange ---
	dir := writeFiles(t, map[string]string{
		"build.hcl": `
project "demo" {
  build_dir = "out"
  plugins   = ["java", "groovy"]
  classpath = ["lib/junit.jar"]

  source_set "main" {
    java_dirs   = ["src/java"]
    classes_dir = "out/classes"
  }
}

clover {
  license_file      = "etc/clover.license"
  excludes          = ["**/gen/**"]
  html              = true
  target_percentage = 80
}
`,
		"tasks/test.hcl": `
task "test" "test" {
  description = "Runs the unit tests."
  depends_on  = ["compileJava"]
  arguments {
    command = ["java", "-version"]
  }
}

task "exec" "compileJava" {
  arguments {
    command = ["javac"]
  }
}
`,
	})

	// --- Act ---
	model, conv, err := NewLoader().Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, conv)

	p := model.Project
	assert.Equal(t, "demo", p.Name)
	assert.Equal(t, dir, p.RootDir)
	assert.Equal(t, "out", p.BuildDir)
	assert.Equal(t, []string{"java", "groovy"}, p.Plugins)
	require.Len(t, p.SourceSets, 1)
	assert.Equal(t, "out/classes", p.SourceSets[0].ClassesDir)

	require.NotNil(t, model.Clover)
	assert.Equal(t, filepath.Join(dir, "etc/clover.license"), *model.Clover.LicenseFile)
	assert.Equal(t, 80.0, *model.Clover.TargetPercentage)
	assert.True(t, *model.Clover.HTML)
	assert.Nil(t, model.Clover.XML)
	assert.Nil(t, model.Clover.Includes)

	require.Len(t, model.Tasks, 2)
	test := model.Tasks[0]
	assert.Equal(t, "test", test.Type)
	assert.Equal(t, "Runs the unit tests.", test.Description)
	assert.Equal(t, []string{"compileJava"}, test.DependsOn)
	assert.Contains(t, test.Arguments, "command")
}

func TestLoader_DefaultsWithoutProjectBlock(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"build.hcl": `task "print" "hello" {
  arguments {
    message = "hi"
  }
}`,
	})

	model, _, err := NewLoader().Load(context.Background(), filepath.Join(dir, "build.hcl"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), model.Project.Name)
	assert.Equal(t, dir, model.Project.RootDir)
	assert.Nil(t, model.Clover)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": `project "x" {`},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown block",
			files:   map[string]string{"a.hcl": `plugin "x" {}`},
			wantErr: "failed to decode HCL file",
		},
		{
			name: "duplicate project",
			files: map[string]string{
				"a.hcl": `project "x" {}`,
				"b.hcl": `project "y" {}`,
			},
			wantErr: "duplicate project block",
		},
		{
			name: "nested block in arguments",
			files: map[string]string{"a.hcl": `task "exec" "x" {
  arguments {
    inner {}
  }
}`},
			wantErr: `task "x"`,
		},
		{
			name:    "no files",
			files:   map[string]string{"readme.txt": "nothing here"},
			wantErr: "no .hcl project files",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeFiles(t, tc.files)
			_, _, err := NewLoader().Load(context.Background(), dir)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
