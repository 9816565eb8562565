package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/scheduler"
)

// Run plans the requested tasks and executes them.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.MetricsPort > 0 {
		a.startHealthcheckServer(ctx, a.config.MetricsPort)
		defer a.closeHealthcheckServer(ctx)
	}

	if a.config.ListTasks {
		return a.ListTasks(a.outW)
	}

	plan, err := a.project.Graph.Finalize(ctx, a.config.Tasks...)
	if err != nil {
		return fmt.Errorf("failed to plan build: %w", err)
	}

	if a.config.DryRun {
		for _, t := range plan.Tasks() {
			fmt.Fprintf(a.outW, ":%s SKIPPED\n", t.Name())
		}
		return nil
	}

	a.logger.Info("🚀 Starting build...", "tasks", a.config.Tasks, "planned", plan.Len())
	exec := scheduler.NewExecutor(a.project.Graph, scheduler.Options{
		ContinueOnFailure: a.config.ContinueOnFailure,
		Recorder:          a.metrics,
	})
	if err := exec.Run(ctx); err != nil {
		a.logger.Error("❌ Build failed.", "error", err)
		return fmt.Errorf("build failed: %w", err)
	}
	a.logger.Info("🏁 Build finished.")
	return nil
}
