package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/dag"
	"github.com/specialistvlad/clovergrid/internal/task"
)

var (
	// ErrTaskNotFound is returned when a requested task or a declared
	// dependency does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrCycle is returned when task dependencies form a cycle.
	ErrCycle = dag.ErrCycle
	// ErrGraphFinalized is returned by a second call to Finalize.
	ErrGraphFinalized = errors.New("task graph already finalized")
	// ErrGraphNotFinalized is returned when execution is attempted before planning.
	ErrGraphNotFinalized = errors.New("task graph not finalized")
)

// ReadyFunc is called once the plan is finalized and before anything executes.
type ReadyFunc func(ctx context.Context, plan *ExecutionPlan) error

// FinishedFunc is called after the last task has run or been skipped. runErr
// is the error the executor is about to return, if any.
type FinishedFunc func(ctx context.Context, plan *ExecutionPlan, runErr error)

// TaskGraph owns the planning lifecycle for a single build invocation.
type TaskGraph struct {
	tasks *task.Container

	mu       sync.Mutex
	plan     *ExecutionPlan
	ready    []ReadyFunc
	finished []FinishedFunc
}

// NewTaskGraph creates a pending task graph over the given container.
func NewTaskGraph(tasks *task.Container) *TaskGraph {
	return &TaskGraph{tasks: tasks}
}

// WhenReady registers a callback for the plan-finalized transition.
// Callbacks run in registration order.
func (g *TaskGraph) WhenReady(fn ReadyFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ready = append(g.ready, fn)
}

// WhenFinished registers a callback that runs after execution ends.
// Callbacks run in reverse registration order, like deferred calls.
func (g *TaskGraph) WhenFinished(fn FinishedFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.finished = append(g.finished, fn)
}

// Plan returns the finalized plan, if there is one.
func (g *TaskGraph) Plan() (*ExecutionPlan, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.plan, g.plan != nil
}

// Finalize resolves the requested tasks and their transitive dependencies
// into an ExecutionPlan and fires the WhenReady callbacks. It can succeed
// only once per graph; a failing callback leaves the graph finalized.
func (g *TaskGraph) Finalize(ctx context.Context, requested ...string) (*ExecutionPlan, error) {
	logger := ctxlog.FromContext(ctx)

	g.mu.Lock()
	if g.plan != nil {
		g.mu.Unlock()
		return nil, ErrGraphFinalized
	}

	d, err := g.buildDAG()
	if err != nil {
		g.mu.Unlock()
		return nil, err
	}
	for _, name := range requested {
		if !d.Has(name) {
			g.mu.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, name)
		}
	}

	order, err := d.TopologicalOrder(requested...)
	if err != nil {
		g.mu.Unlock()
		return nil, fmt.Errorf("ordering tasks: %w", err)
	}

	ordered := make([]*task.Task, 0, len(order))
	for _, name := range order {
		t, _ := g.tasks.Get(name)
		ordered = append(ordered, t)
	}
	plan := newExecutionPlan(requested, ordered, d)
	g.plan = plan
	ready := append([]ReadyFunc(nil), g.ready...)
	g.mu.Unlock()

	logger.Debug("Task graph finalized.", "requested", requested, "planned", order)

	for _, fn := range ready {
		if err := fn(ctx, plan); err != nil {
			return plan, fmt.Errorf("task graph ready callback: %w", err)
		}
	}
	return plan, nil
}

// buildDAG mirrors the container's dependency declarations into a dag.Graph.
func (g *TaskGraph) buildDAG() (*dag.Graph, error) {
	d := dag.New()
	all := g.tasks.All()
	for _, t := range all {
		d.AddNode(t.Name())
	}
	for _, t := range all {
		for _, dep := range t.Dependencies() {
			if !d.Has(dep) {
				return nil, fmt.Errorf("%w: %q (dependency of %q)", ErrTaskNotFound, dep, t.Name())
			}
			if err := d.AddEdge(dep, t.Name()); err != nil {
				return nil, err
			}
		}
	}
	if err := d.DetectCycles(); err != nil {
		return nil, err
	}
	return d, nil
}

// finish runs the WhenFinished callbacks.
func (g *TaskGraph) finish(ctx context.Context, plan *ExecutionPlan, runErr error) {
	g.mu.Lock()
	finished := append([]FinishedFunc(nil), g.finished...)
	g.mu.Unlock()

	for i := len(finished) - 1; i >= 0; i-- {
		finished[i](ctx, plan, runErr)
	}
}
