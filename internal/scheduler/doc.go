// Package scheduler turns a container of tasks into an ExecutionPlan and runs it.
//
// # Lifecycle
//
// A build moves through two states, once per invocation:
//
//  1. plan-pending: tasks are registered and wired; plugins register
//     WhenReady and WhenFinished callbacks on the TaskGraph.
//  2. plan-finalized: TaskGraph.Finalize resolves the requested task names
//     plus their transitive dependencies into an ordered, read-only
//     ExecutionPlan, then fires every WhenReady callback exactly once,
//     before any task executes.
//
// Callbacks can inspect the finalized plan and mutate the action lists of
// the tasks in it. This is how a plugin attaches work to other tasks only
// when something it owns is actually scheduled. Plan membership never
// changes after finalization.
//
// # Execution
//
// The Executor is single-threaded: one task body runs to
// completion before the next begins, in plan order. On failure it either
// stops the build (default) or, with ContinueOnFailure, skips only the
// transitive dependents of the failed task. WhenFinished callbacks run after
// the last task regardless of the outcome.
package scheduler
