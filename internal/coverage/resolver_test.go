package coverage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/clovergrid/internal/clover"
	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// logCtx returns a context whose logger writes text records into buf.
func logCtx(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestResolver_ClassesBackupDir(t *testing.T) {
	root := t.TempDir()
	p := project.New("demo", root)

	t.Run("defaults to main classes dir plus suffix", func(t *testing.T) {
		r := NewResolver(p, nil)
		assert.Equal(t, filepath.Join(root, "build/classes/main")+"-bak", r.ClassesBackupDir())
	})

	t.Run("follows a relocated classes dir", func(t *testing.T) {
		q := project.New("demo", root)
		q.AddSourceSet(&project.SourceSet{Name: project.MainSourceSet, ClassesDir: "out/main"})
		r := NewResolver(q, nil)
		assert.Equal(t, filepath.Join(root, "out/main-bak"), r.ClassesBackupDir())
	})

	t.Run("override is returned verbatim", func(t *testing.T) {
		r := NewResolver(p, &Convention{ClassesBackupDir: ptr("/x/bak")})
		assert.Equal(t, "/x/bak", r.ClassesBackupDir())
	})
}

func TestResolver_Includes(t *testing.T) {
	p := project.New("demo", t.TempDir())
	r := NewResolver(p, nil)
	assert.Equal(t, []string{"**/*.java"}, r.Includes())

	p.AddPlugin(project.PluginGroovy)
	assert.Equal(t, []string{"**/*.java", "**/*.groovy"}, r.Includes(), "groovy plugin is picked up on the next read")

	overridden := NewResolver(p, &Convention{Includes: []string{"com/acme/**"}})
	assert.Equal(t, []string{"com/acme/**"}, overridden.Includes())
}

func TestResolver_SrcDirsSkipsMissing(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src/main/java"), 0o755))
	p := project.New("demo", root)
	p.AddPlugin(project.PluginGroovy)
	p.AddSourceSet(&project.SourceSet{
		Name:       project.MainSourceSet,
		JavaDirs:   []string{"src/main/java", "src/gen/java"},
		GroovyDirs: []string{"src/main/groovy"},
	})
	var logs bytes.Buffer

	// --- Act ---
	dirs := NewResolver(p, nil).SrcDirs(logCtx(&logs))

	// --- Assert ---
	assert.Equal(t, []string{filepath.Join(root, "src/main/java")}, dirs)
	out := logs.String()
	assert.Equal(t, 2, strings.Count(out, "Clover source directory does not exist"))
	assert.Contains(t, out, filepath.Join(root, "src/gen/java"))
	assert.Contains(t, out, filepath.Join(root, "src/main/groovy"))
}

func TestResolver_SrcDirsFollowGroovyPlugin(t *testing.T) {
	root := t.TempDir()
	javaDir := filepath.Join(root, "src/main/java")
	groovyDir := filepath.Join(root, "src/main/groovy")
	require.NoError(t, os.MkdirAll(javaDir, 0o755))
	require.NoError(t, os.MkdirAll(groovyDir, 0o755))

	t.Run("groovy plugin disabled", func(t *testing.T) {
		p := project.New("demo", root)
		var logs bytes.Buffer

		dirs := NewResolver(p, nil).SrcDirs(logCtx(&logs))

		assert.Equal(t, []string{javaDir}, dirs)
		assert.NotContains(t, logs.String(), "does not exist")
	})

	t.Run("groovy plugin enabled", func(t *testing.T) {
		p := project.New("demo", root)
		p.AddPlugin(project.PluginGroovy)

		dirs := NewResolver(p, nil).SrcDirs(logCtx(&bytes.Buffer{}))

		assert.Equal(t, []string{javaDir, groovyDir}, dirs)
	})
}

func TestResolver_Defaults(t *testing.T) {
	root := t.TempDir()
	p := project.New("demo", root)
	p.Classpath = []string{"lib/junit.jar"}
	p.SourceCompatibility = "11"
	r := NewResolver(p, nil)

	assert.Equal(t, filepath.Join(root, "clover.license"), r.LicenseFile())
	assert.Equal(t, filepath.Join(root, "build/.clover/clover.db"), r.InitString())
	assert.Equal(t, filepath.Join(root, "build/reports/clover"), r.ReportsDir())
	assert.Equal(t, []string{filepath.Join(root, "lib/junit.jar")}, r.Classpath())
	assert.Equal(t, "11", r.SourceCompatibility())
	assert.Equal(t, "11", r.TargetCompatibility())
	assert.Empty(t, r.Excludes())
	assert.Equal(t, []clover.Format{clover.FormatXML}, r.Formats())
	_, ok := r.TargetPercentage()
	assert.False(t, ok)
}

func TestResolver_Formats(t *testing.T) {
	p := project.New("demo", t.TempDir())

	r := NewResolver(p, &Convention{HTML: ptr(true), PDF: ptr(true), XML: ptr(false)})
	assert.Equal(t, []clover.Format{clover.FormatHTML, clover.FormatPDF}, r.Formats())

	r = NewResolver(p, &Convention{XML: ptr(false)})
	assert.Equal(t, []clover.Format{clover.FormatXML}, r.Formats(), "xml is the fallback when nothing is enabled")
}

func TestResolver_Resolve(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(project.New("demo", root), &Convention{TargetPercentage: ptr(80.0)})

	v, err := r.Resolve(context.Background(), SettingInitString)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "build/.clover/clover.db"), v)

	v, err = r.Resolve(context.Background(), SettingTargetPercentage)
	require.NoError(t, err)
	assert.Equal(t, 80.0, v)

	_, err = r.Resolve(context.Background(), "colour")
	assert.True(t, errors.Is(err, ErrUnknownSetting))
}
