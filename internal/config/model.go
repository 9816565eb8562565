package config

import "github.com/hashicorp/hcl/v2"

// Model is the unified, format-agnostic representation of a build:
// the project, its tasks and the coverage settings.
type Model struct {
	Project *Project
	Tasks   []*Task
	// Clover is nil when no clover block was declared.
	Clover *Clover
}

// Project is the format-agnostic representation of a `project` block.
type Project struct {
	Name string
	// RootDir is absolute. Every relative path in the model resolves against it.
	RootDir             string
	BuildDir            string
	Plugins             []string
	SourceCompatibility string
	TargetCompatibility string
	Classpath           []string
	GroovyClasspath     []string
	SourceSets          []*SourceSet
}

// SourceSet is the format-agnostic representation of a `source_set` block.
type SourceSet struct {
	Name       string
	JavaDirs   []string
	GroovyDirs []string
	ClassesDir string
}

// Task is the format-agnostic representation of a `task` block.
type Task struct {
	Type        string
	Name        string
	Description string
	DependsOn   []string
	Arguments   map[string]hcl.Expression
}

// Clover holds the explicit overrides from the `clover` block. Nil fields
// were not set. Path values are absolute.
type Clover struct {
	LicenseFile      *string
	ClassesBackupDir *string
	InitString       *string
	ReportsDir       *string
	CloverJar        *string
	Includes         []string
	Excludes         []string
	TargetPercentage *float64

	XML  *bool
	JSON *bool
	HTML *bool
	PDF  *bool
}
