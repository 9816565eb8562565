// Package schema holds the HCL block structures of a project file, decoded
// with gohcl.
package schema

import "github.com/hashicorp/hcl/v2"

// File represents the top-level structure of a single project file.
type File struct {
	Projects []*Project `hcl:"project,block"`
	Tasks    []*Task    `hcl:"task,block"`
	Clovers  []*Clover  `hcl:"clover,block"`
}

// Project represents the `project` block.
type Project struct {
	Name                string       `hcl:"name,label"`
	BuildDir            string       `hcl:"build_dir,optional"`
	Plugins             []string     `hcl:"plugins,optional"`
	SourceCompatibility string       `hcl:"source_compatibility,optional"`
	TargetCompatibility string       `hcl:"target_compatibility,optional"`
	Classpath           []string     `hcl:"classpath,optional"`
	GroovyClasspath     []string     `hcl:"groovy_classpath,optional"`
	SourceSets          []*SourceSet `hcl:"source_set,block"`
}

// SourceSet represents a `source_set` block within a project.
type SourceSet struct {
	Name       string   `hcl:"name,label"`
	JavaDirs   []string `hcl:"java_dirs,optional"`
	GroovyDirs []string `hcl:"groovy_dirs,optional"`
	ClassesDir string   `hcl:"classes_dir,optional"`
}

// Arguments represents the content of the 'arguments' block within a task.
// Its attributes are kept as raw expressions and decoded by the task type.
type Arguments struct {
	Body hcl.Body `hcl:",remain"`
}

// Task represents a `task` block: an instance of a registered task type.
type Task struct {
	Type        string     `hcl:"type,label"`
	Name        string     `hcl:"name,label"`
	Description string     `hcl:"description,optional"`
	DependsOn   []string   `hcl:"depends_on,optional"`
	Arguments   *Arguments `hcl:"arguments,block"`
}

// Clover represents the `clover` settings block.
type Clover struct {
	LicenseFile      *string  `hcl:"license_file,optional"`
	ClassesBackupDir *string  `hcl:"classes_backup_dir,optional"`
	InitString       *string  `hcl:"init_string,optional"`
	ReportsDir       *string  `hcl:"reports_dir,optional"`
	CloverJar        *string  `hcl:"clover_jar,optional"`
	Includes         []string `hcl:"includes,optional"`
	Excludes         []string `hcl:"excludes,optional"`
	TargetPercentage *float64 `hcl:"target_percentage,optional"`
	XML              *bool    `hcl:"xml,optional"`
	JSON             *bool    `hcl:"json,optional"`
	HTML             *bool    `hcl:"html,optional"`
	PDF              *bool    `hcl:"pdf,optional"`
}
