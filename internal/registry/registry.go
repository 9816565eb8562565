package registry

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/specialistvlad/clovergrid/internal/command"
	"github.com/specialistvlad/clovergrid/internal/project"
	"github.com/specialistvlad/clovergrid/internal/task"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Env is what a task type's action may use from the host.
type Env struct {
	Project *project.Project
	Runner  command.Runner
	Stdout  io.Writer
	Stderr  io.Writer
}

// TaskType holds the compiled Go parts of a task type.
type TaskType struct {
	Kind        task.Kind
	Description string
	// NewInput returns a pointer to a fresh input struct with `arg` tags.
	NewInput func() any
	// NewAction builds the task body from a decoded input.
	NewAction func(env *Env, input any) (task.Action, error)
}

// Registry holds all the registered task types for a single application instance.
type Registry struct {
	TaskTypes map[string]*TaskType
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{TaskTypes: make(map[string]*TaskType)}
}

// RegisterTaskType registers a task type under its block label.
func (r *Registry) RegisterTaskType(name string, tt *TaskType) {
	if _, exists := r.TaskTypes[name]; exists {
		panic(fmt.Sprintf("task type with name '%s' already registered", name))
	}
	slog.Debug("Registering task type.", "name", name, "kind", tt.Kind)
	r.TaskTypes[name] = tt
}

// TaskType looks up a registered task type.
func (r *Registry) TaskType(name string) (*TaskType, bool) {
	tt, ok := r.TaskTypes[name]
	return tt, ok
}

// Names returns the registered task type names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.TaskTypes))
	for name := range r.TaskTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
