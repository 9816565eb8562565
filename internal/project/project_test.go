package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Conventions(t *testing.T) {
	root := t.TempDir()
	p := New("demo", root)

	assert.True(t, p.HasPlugin(PluginJava))
	assert.False(t, p.HasPlugin(PluginGroovy))
	assert.Equal(t, filepath.Join(root, "build"), p.BuildPath())
	assert.Equal(t, filepath.Join(root, "build", "classes", "main"), p.ClassesDir(MainSourceSet))
	assert.Equal(t, []string{filepath.Join(root, "src", "main", "java")}, p.JavaSrcDirs(MainSourceSet))
	assert.Nil(t, p.GroovySrcDirs(MainSourceSet), "groovy dirs only exist with the groovy plugin")

	src, target := p.Compatibility()
	assert.Equal(t, "1.8", src)
	assert.Equal(t, "1.8", target)

	require.NotNil(t, p.Tasks)
	require.NotNil(t, p.Graph)
}

func TestConventionsFollowLaterChanges(t *testing.T) {
	root := t.TempDir()
	p := New("demo", root)

	p.BuildDir = "out"
	assert.Equal(t, filepath.Join(root, "out", "classes", "main"), p.ClassesDir(MainSourceSet))

	p.AddPlugin(PluginGroovy)
	assert.Equal(t, []string{filepath.Join(root, "src", "main", "groovy")}, p.GroovySrcDirs(MainSourceSet))
}

func TestExplicitSourceSet(t *testing.T) {
	root := t.TempDir()
	p := New("demo", root)
	p.AddPlugin(PluginGroovy)
	p.AddSourceSet(&SourceSet{
		Name:       MainSourceSet,
		JavaDirs:   []string{"java", "/abs/gen"},
		GroovyDirs: []string{"groovy"},
		ClassesDir: "bin",
	})

	assert.Equal(t, []string{filepath.Join(root, "java"), "/abs/gen"}, p.JavaSrcDirs(MainSourceSet))
	assert.Equal(t, []string{filepath.Join(root, "groovy")}, p.GroovySrcDirs(MainSourceSet))
	assert.Equal(t, filepath.Join(root, "bin"), p.ClassesDir(MainSourceSet))
	assert.Len(t, p.SourceSets(), 2, "replacing a source set keeps one entry")
}

func TestCompatibility_TargetDefaultsToSource(t *testing.T) {
	p := New("demo", t.TempDir())
	p.SourceCompatibility = "11"
	src, target := p.Compatibility()
	assert.Equal(t, "11", src)
	assert.Equal(t, "11", target)
}
