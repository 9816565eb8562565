package coverage

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/clovergrid/internal/clover"
	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/project"
	"github.com/specialistvlad/clovergrid/internal/scheduler"
	"github.com/specialistvlad/clovergrid/internal/task"
)

const (
	// PluginID is the id under which the plugin is enabled on a project.
	PluginID = "clover"
	// ReportTaskName is the fixed name of the report task.
	ReportTaskName = "cloverReport"

	reportDescription = "Generates Clover code coverage report."
	reportGroup       = "report"
)

// ActivationRecorder is told each time instrumentation is switched on for a run.
type ActivationRecorder interface {
	InstrumentationActivated()
}

// Plugin is the Clover coverage plugin.
type Plugin struct {
	Convention *Convention
	Tool       clover.Tool
	// Activations is optional.
	Activations ActivationRecorder
}

// Apply registers cloverReport on p, makes it depend on every test task
// registered so far and subscribes to the task graph. Test tasks must be
// registered before Apply is called.
func (pl *Plugin) Apply(p *project.Project) error {
	if pl.Tool == nil {
		return fmt.Errorf("clover plugin: no tool configured")
	}
	resolver := NewResolver(p, pl.Convention)
	state := &instrumentation{}

	report := task.New(ReportTaskName, task.KindReport)
	report.Description = reportDescription
	report.Group = reportGroup
	for _, t := range p.Tasks.OfKind(task.KindTest) {
		report.DependsOn(t.Name())
	}
	report.DoLast(&ReportAction{resolver: resolver, tool: pl.Tool, state: state})
	if err := p.Tasks.Register(report); err != nil {
		return fmt.Errorf("clover plugin: %w", err)
	}
	p.AddPlugin(PluginID)

	p.Graph.WhenReady(func(ctx context.Context, plan *scheduler.ExecutionPlan) error {
		pl.onGraphReady(ctx, plan, resolver, state, p.Graph)
		return nil
	})
	return nil
}

// onGraphReady attaches instrumentation to the planned test tasks, but only
// when the report task is scheduled.
func (pl *Plugin) onGraphReady(ctx context.Context, plan *scheduler.ExecutionPlan, resolver *Resolver, state *instrumentation, graph *scheduler.TaskGraph) {
	logger := ctxlog.FromContext(ctx)
	if !plan.Contains(ReportTaskName) {
		logger.Debug("Clover report not scheduled, leaving test tasks alone.")
		return
	}

	tests := plan.TasksOfKind(task.KindTest)
	for _, t := range tests {
		if hasInstrumentAction(t) {
			continue
		}
		t.DoFirst(&InstrumentAction{resolver: resolver, tool: pl.Tool, state: state})
	}
	logger.Info("Clover instrumentation enabled.", "test_tasks", len(tests))
	if pl.Activations != nil {
		pl.Activations.InstrumentationActivated()
	}

	graph.WhenFinished(func(ctx context.Context, _ *scheduler.ExecutionPlan, _ error) {
		if err := state.restore(ctx); err != nil {
			ctxlog.FromContext(ctx).Error("Failed to restore original classes.", "error", err)
		}
	})
}

func hasInstrumentAction(t *task.Task) bool {
	return slices.ContainsFunc(t.Actions(), func(a task.Action) bool {
		_, ok := a.(*InstrumentAction)
		return ok
	})
}
