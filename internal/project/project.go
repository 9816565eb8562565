// Package project holds the host build's project model: where the project
// lives, which plugins are enabled, its source sets and compile settings,
// plus the task container and task graph for the current invocation.
//
// Directory-valued settings follow an override-then-convention rule: an
// empty field means "use the convention", and the convention is computed
// from the current state every time it is read.
package project

import (
	"path/filepath"
	"slices"

	"github.com/specialistvlad/clovergrid/internal/scheduler"
	"github.com/specialistvlad/clovergrid/internal/task"
)

const (
	// PluginJava enables Java source sets. It is implied for every project.
	PluginJava = "java"
	// PluginGroovy adds Groovy source directories to every source set.
	PluginGroovy = "groovy"

	// MainSourceSet is the name of the production source set.
	MainSourceSet = "main"
	// TestSourceSet is the name of the test source set.
	TestSourceSet = "test"

	defaultBuildDir      = "build"
	defaultCompatibility = "1.8"
)

// SourceSet describes one logical group of sources and their compiled output.
// Nil or empty fields fall back to the project's conventions.
type SourceSet struct {
	Name       string
	JavaDirs   []string
	GroovyDirs []string
	ClassesDir string
}

// Project is the host model queried by plugins.
type Project struct {
	Name    string
	RootDir string
	// BuildDir is relative to RootDir unless absolute. Empty means "build".
	BuildDir string

	SourceCompatibility string
	TargetCompatibility string
	Classpath           []string
	GroovyClasspath     []string

	Tasks *task.Container
	Graph *scheduler.TaskGraph

	plugins    []string
	sourceSets map[string]*SourceSet
	setOrder   []string
}

// New creates a project rooted at rootDir with the java plugin enabled and
// conventional main and test source sets.
func New(name, rootDir string) *Project {
	tasks := task.NewContainer()
	p := &Project{
		Name:       name,
		RootDir:    rootDir,
		Tasks:      tasks,
		Graph:      scheduler.NewTaskGraph(tasks),
		sourceSets: make(map[string]*SourceSet),
	}
	p.AddPlugin(PluginJava)
	p.AddSourceSet(&SourceSet{Name: MainSourceSet})
	p.AddSourceSet(&SourceSet{Name: TestSourceSet})
	return p
}

// AddPlugin enables a plugin by id. Enabling twice is a no-op.
func (p *Project) AddPlugin(id string) {
	if !slices.Contains(p.plugins, id) {
		p.plugins = append(p.plugins, id)
	}
}

// HasPlugin reports whether the plugin is enabled.
func (p *Project) HasPlugin(id string) bool {
	return slices.Contains(p.plugins, id)
}

// Plugins returns the enabled plugin ids in the order they were added.
func (p *Project) Plugins() []string {
	return slices.Clone(p.plugins)
}

// AddSourceSet adds or replaces a source set.
func (p *Project) AddSourceSet(ss *SourceSet) {
	if _, exists := p.sourceSets[ss.Name]; !exists {
		p.setOrder = append(p.setOrder, ss.Name)
	}
	p.sourceSets[ss.Name] = ss
}

// SourceSet looks up a source set by name.
func (p *Project) SourceSet(name string) (*SourceSet, bool) {
	ss, ok := p.sourceSets[name]
	return ss, ok
}

// SourceSets returns every source set in declaration order.
func (p *Project) SourceSets() []*SourceSet {
	out := make([]*SourceSet, 0, len(p.setOrder))
	for _, name := range p.setOrder {
		out = append(out, p.sourceSets[name])
	}
	return out
}

// Path resolves a project-relative path to an absolute, clean path.
func (p *Project) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(p.RootDir, rel)
}

// BuildPath returns the absolute build directory.
func (p *Project) BuildPath() string {
	if p.BuildDir == "" {
		return p.Path(defaultBuildDir)
	}
	return p.Path(p.BuildDir)
}

// Compatibility returns the source and target language levels.
func (p *Project) Compatibility() (source, target string) {
	source, target = p.SourceCompatibility, p.TargetCompatibility
	if source == "" {
		source = defaultCompatibility
	}
	if target == "" {
		target = source
	}
	return source, target
}

// JavaSrcDirs returns the absolute Java source directories of a source set.
func (p *Project) JavaSrcDirs(set string) []string {
	ss := p.sourceSetOrConvention(set)
	if len(ss.JavaDirs) == 0 {
		return []string{p.Path(filepath.Join("src", set, "java"))}
	}
	return p.paths(ss.JavaDirs)
}

// GroovySrcDirs returns the absolute Groovy source directories of a source
// set, or nil if the groovy plugin is not enabled.
func (p *Project) GroovySrcDirs(set string) []string {
	if !p.HasPlugin(PluginGroovy) {
		return nil
	}
	ss := p.sourceSetOrConvention(set)
	if len(ss.GroovyDirs) == 0 {
		return []string{p.Path(filepath.Join("src", set, "groovy"))}
	}
	return p.paths(ss.GroovyDirs)
}

// ClassesDir returns the absolute compiled-classes directory of a source set.
func (p *Project) ClassesDir(set string) string {
	ss := p.sourceSetOrConvention(set)
	if ss.ClassesDir == "" {
		return filepath.Join(p.BuildPath(), "classes", set)
	}
	return p.Path(ss.ClassesDir)
}

// ResolvedClasspath returns the absolute compile classpath entries.
func (p *Project) ResolvedClasspath() []string {
	return p.paths(p.Classpath)
}

// ResolvedGroovyClasspath returns the absolute groovy compiler classpath entries.
func (p *Project) ResolvedGroovyClasspath() []string {
	return p.paths(p.GroovyClasspath)
}

func (p *Project) sourceSetOrConvention(name string) *SourceSet {
	if ss, ok := p.sourceSets[name]; ok {
		return ss
	}
	return &SourceSet{Name: name}
}

func (p *Project) paths(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = p.Path(s)
	}
	return out
}
