// Package task defines the unit of scheduled work in a build: a named task
// with an ordered list of actions and a set of dependencies.
//
// Tasks are owned by the host build. Plugins may only mutate a task's action
// list (DoFirst, DoLast) and its dependency set (DependsOn).
package task

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Kind classifies a task so that plugins can find tasks by role rather than by name.
type Kind string

const (
	// KindExec is a generic task that runs a command or a Go handler.
	KindExec Kind = "exec"
	// KindTest is a test-execution task.
	KindTest Kind = "test"
	// KindReport produces a report from the output of other tasks.
	KindReport Kind = "report"
	// KindPublish ships build output somewhere else.
	KindPublish Kind = "publish"
)

// Action is a single step of a task's body.
type Action interface {
	Execute(ctx context.Context, t *Task) error
}

// ActionFunc adapts an ordinary function to the Action interface.
type ActionFunc func(ctx context.Context, t *Task) error

// Execute implements Action.
func (f ActionFunc) Execute(ctx context.Context, t *Task) error {
	return f(ctx, t)
}

// Named is implemented by actions that want a readable name in logs and errors.
type Named interface {
	ActionName() string
}

// Task represents a node in the build's task graph.
type Task struct {
	name string
	kind Kind

	// Description is a human-readable summary shown by the `tasks` listing.
	Description string
	// Group buckets tasks in the `tasks` listing (e.g. "verification", "report").
	Group string

	mu        sync.Mutex
	actions   []Action
	dependsOn []string
}

// New creates a task with no actions and no dependencies.
func New(name string, kind Kind) *Task {
	return &Task{name: name, kind: kind}
}

// Name returns the task's unique name.
func (t *Task) Name() string {
	return t.name
}

// Kind returns the task's kind.
func (t *Task) Kind() Kind {
	return t.kind
}

// DoFirst prepends an action, so it runs before everything already attached.
func (t *Task) DoFirst(a Action) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions = append([]Action{a}, t.actions...)
}

// DoLast appends an action.
func (t *Task) DoLast(a Action) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions = append(t.actions, a)
}

// Actions returns a snapshot of the task's action list.
func (t *Task) Actions() []Action {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.actions)
}

// DependsOn adds the named tasks to this task's dependency set. Duplicates are ignored.
func (t *Task) DependsOn(names ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, n := range names {
		if !slices.Contains(t.dependsOn, n) {
			t.dependsOn = append(t.dependsOn, n)
		}
	}
}

// Dependencies returns the names this task depends on, in the order they were added.
func (t *Task) Dependencies() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.dependsOn)
}

// Execute runs every action in order and stops at the first failure.
func (t *Task) Execute(ctx context.Context) error {
	for i, a := range t.Actions() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.Execute(ctx, t); err != nil {
			return fmt.Errorf("%s: %w", actionName(a, i), err)
		}
	}
	return nil
}

func actionName(a Action, i int) string {
	if n, ok := a.(Named); ok {
		return n.ActionName()
	}
	return fmt.Sprintf("action #%d", i+1)
}
