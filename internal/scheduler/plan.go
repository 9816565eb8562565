package scheduler

import (
	"github.com/specialistvlad/clovergrid/internal/dag"
	"github.com/specialistvlad/clovergrid/internal/task"
)

// ExecutionPlan is the finalized, ordered set of tasks selected for one run.
// It is immutable once built: every method is a pure read.
type ExecutionPlan struct {
	requested []string
	tasks     []*task.Task
	index     map[string]int
	graph     *dag.Graph
}

func newExecutionPlan(requested []string, ordered []*task.Task, g *dag.Graph) *ExecutionPlan {
	p := &ExecutionPlan{
		requested: append([]string(nil), requested...),
		tasks:     ordered,
		index:     make(map[string]int, len(ordered)),
		graph:     g,
	}
	for i, t := range ordered {
		p.index[t.Name()] = i
	}
	return p
}

// Requested returns the task names the plan was built from.
func (p *ExecutionPlan) Requested() []string {
	return append([]string(nil), p.requested...)
}

// Tasks returns the plan's tasks in execution order.
func (p *ExecutionPlan) Tasks() []*task.Task {
	return append([]*task.Task(nil), p.tasks...)
}

// Len returns the number of tasks in the plan.
func (p *ExecutionPlan) Len() int {
	return len(p.tasks)
}

// Contains reports whether the named task is scheduled to run.
func (p *ExecutionPlan) Contains(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Task returns the scheduled task with the given name.
func (p *ExecutionPlan) Task(name string) (*task.Task, bool) {
	i, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return p.tasks[i], true
}

// TasksOfKind returns the scheduled tasks of the given kind, in execution order.
func (p *ExecutionPlan) TasksOfKind(kind task.Kind) []*task.Task {
	var out []*task.Task
	for _, t := range p.tasks {
		if t.Kind() == kind {
			out = append(out, t)
		}
	}
	return out
}

// dependentsOf returns the scheduled tasks that transitively depend on name.
func (p *ExecutionPlan) dependentsOf(name string) []string {
	desc, err := p.graph.Descendants(name)
	if err != nil {
		return nil
	}
	var out []string
	for _, d := range desc {
		if p.Contains(d) {
			out = append(out, d)
		}
	}
	return out
}
