package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/task"
)

// ErrSkipped marks a task that never ran because of another task's failure.
// A skip is a symptom, never a root cause.
var ErrSkipped = errors.New("skipped")

// Outcome is the final state of a task in a run.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// TaskResult records what happened to one planned task.
type TaskResult struct {
	Task     string
	Outcome  Outcome
	Err      error
	Duration time.Duration
}

// Recorder observes task outcomes, e.g. to export metrics.
type Recorder interface {
	TaskFinished(name string, outcome Outcome, d time.Duration)
}

// Options tunes executor behaviour.
type Options struct {
	// ContinueOnFailure keeps running tasks that do not depend on a failed task.
	ContinueOnFailure bool
	// Recorder, if set, is told about every task outcome.
	Recorder Recorder
}

// Executor runs a finalized plan one task at a time.
type Executor struct {
	graph   *TaskGraph
	opts    Options
	results []TaskResult
}

// NewExecutor creates an executor for the given task graph.
func NewExecutor(g *TaskGraph, opts Options) *Executor {
	return &Executor{graph: g, opts: opts}
}

// Results returns the per-task results of the last run, in plan order.
func (e *Executor) Results() []TaskResult {
	return append([]TaskResult(nil), e.results...)
}

// Run executes the finalized plan and returns an error if any task fails.
// It respects the cancellation signal from the provided context.
func (e *Executor) Run(ctx context.Context) (runErr error) {
	logger := ctxlog.FromContext(ctx)

	plan, ok := e.graph.Plan()
	if !ok {
		return ErrGraphNotFinalized
	}
	defer func() { e.graph.finish(ctx, plan, runErr) }()

	e.results = e.results[:0]
	skipped := make(map[string]error)

	for _, t := range plan.Tasks() {
		taskLogger := logger.With("task", t.Name())

		if reason, ok := skipped[t.Name()]; ok {
			taskLogger.Warn("Skipping task.", "reason", reason)
			e.record(TaskResult{Task: t.Name(), Outcome: OutcomeSkipped, Err: reason})
			continue
		}
		if err := ctx.Err(); err != nil {
			taskLogger.Warn("Context canceled, skipping task.")
			e.record(TaskResult{Task: t.Name(), Outcome: OutcomeSkipped, Err: fmt.Errorf("%w: %w", ErrSkipped, err)})
			continue
		}

		taskLogger.Info("▶️ Starting task")
		start := time.Now()
		err := t.Execute(ctxlog.WithLogger(ctx, taskLogger))
		elapsed := time.Since(start)

		if err != nil {
			taskLogger.Error("Task failed.", "error", err, "duration", elapsed)
			e.record(TaskResult{Task: t.Name(), Outcome: OutcomeFailed, Err: err, Duration: elapsed})
			e.skipAfterFailure(plan, t, skipped)
			continue
		}

		taskLogger.Info("✅ Finished task", "duration", elapsed)
		e.record(TaskResult{Task: t.Name(), Outcome: OutcomeSucceeded, Duration: elapsed})
	}

	return e.rootCause()
}

// skipAfterFailure decides which not-yet-run tasks will be skipped because t failed.
func (e *Executor) skipAfterFailure(plan *ExecutionPlan, failed *task.Task, skipped map[string]error) {
	if e.opts.ContinueOnFailure {
		reason := fmt.Errorf("%w due to upstream failure of '%s'", ErrSkipped, failed.Name())
		for _, name := range plan.dependentsOf(failed.Name()) {
			if _, ok := skipped[name]; !ok {
				skipped[name] = reason
			}
		}
		return
	}

	reason := fmt.Errorf("%w: build stopped after failure of '%s'", ErrSkipped, failed.Name())
	seen := false
	for _, t := range plan.Tasks() {
		if seen {
			if _, ok := skipped[t.Name()]; !ok {
				skipped[t.Name()] = reason
			}
		}
		if t == failed {
			seen = true
		}
	}
}

func (e *Executor) record(r TaskResult) {
	e.results = append(e.results, r)
	if e.opts.Recorder != nil {
		e.opts.Recorder.TaskFinished(r.Task, r.Outcome, r.Duration)
	}
}

// rootCause folds the recorded failures into one error. Skips and
// cancellations are symptoms and only surface if nothing else failed.
func (e *Executor) rootCause() error {
	var failedTasks []string
	var cause error
	for _, r := range e.results {
		if r.Outcome != OutcomeFailed {
			continue
		}
		if errors.Is(r.Err, context.Canceled) {
			continue
		}
		failedTasks = append(failedTasks, r.Task)
		if cause == nil {
			cause = r.Err
		}
	}
	if cause != nil {
		return fmt.Errorf("execution failed for %s: %w", strings.Join(failedTasks, ", "), cause)
	}
	for _, r := range e.results {
		if r.Err != nil {
			return fmt.Errorf("execution incomplete: %w", r.Err)
		}
	}
	return nil
}
