package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/clovergrid/internal/clover"
	"github.com/specialistvlad/clovergrid/internal/command"
	"github.com/specialistvlad/clovergrid/internal/config"
	"github.com/specialistvlad/clovergrid/internal/coverage"
	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/metrics"
	"github.com/specialistvlad/clovergrid/internal/project"
	"github.com/specialistvlad/clovergrid/internal/registry"
	"github.com/specialistvlad/clovergrid/internal/task"
	"github.com/zclconf/go-cty/cty"
)

// Deps are the external collaborators of an App. Zero values get the
// production implementations.
type Deps struct {
	Runner  command.Runner
	Tool    clover.Tool
	Modules []registry.Module
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	runID      string
	config     *Config
	registry   *registry.Registry
	project    *project.Project
	metrics    *metrics.Metrics
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads the project,
// registers its tasks and applies the coverage plugin. Any configuration
// error is fatal and panics.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, deps Deps) *App {
	runID := uuid.NewString()
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW).With("run_id", runID)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load all configuration into the format-agnostic model first.
	cfgModel, converter, err := loader.Load(ctx, appConfig.ProjectPath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	reg := registry.New()
	modules := deps.Modules
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	if err := reg.ValidateRegistry(ctx); err != nil {
		// This is a programmer error (a malformed task type), so we panic.
		panic(err)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "task_types", reg.Names())

	runner := deps.Runner
	if runner == nil {
		runner = command.NewExecRunner()
	}

	a := &App{
		outW:     outW,
		logger:   logger,
		runID:    runID,
		config:   appConfig,
		registry: reg,
		project:  newProject(cfgModel.Project),
		metrics:  metrics.New(),
	}

	env := &registry.Env{Project: a.project, Runner: runner, Stdout: outW, Stderr: outW}
	if err := a.registerTasks(ctx, cfgModel.Tasks, converter, env); err != nil {
		panic(err)
	}
	if err := a.applyCoverage(cfgModel, deps.Tool, runner); err != nil {
		panic(err)
	}
	logger.Debug("Project configured.", "project", a.project.Name, "tasks", len(a.project.Tasks.All()))
	return a
}

// newProject builds the host project model from its configuration.
func newProject(cfg *config.Project) *project.Project {
	p := project.New(cfg.Name, cfg.RootDir)
	p.BuildDir = cfg.BuildDir
	p.SourceCompatibility = cfg.SourceCompatibility
	p.TargetCompatibility = cfg.TargetCompatibility
	p.Classpath = cfg.Classpath
	p.GroovyClasspath = cfg.GroovyClasspath
	for _, id := range cfg.Plugins {
		if id != coverage.PluginID {
			p.AddPlugin(id)
		}
	}
	for _, ss := range cfg.SourceSets {
		p.AddSourceSet(&project.SourceSet{
			Name:       ss.Name,
			JavaDirs:   ss.JavaDirs,
			GroovyDirs: ss.GroovyDirs,
			ClassesDir: ss.ClassesDir,
		})
	}
	return p
}

// registerTasks decodes every configured task's arguments and registers it
// on the project.
func (a *App) registerTasks(ctx context.Context, tasks []*config.Task, converter config.Converter, env *registry.Env) error {
	evalCtx, err := a.evalContext(converter)
	if err != nil {
		return err
	}

	for _, ct := range tasks {
		tt, ok := a.registry.TaskType(ct.Type)
		if !ok {
			return fmt.Errorf("task %q: unknown task type %q (known: %v)", ct.Name, ct.Type, a.registry.Names())
		}

		var input any
		if tt.NewInput != nil {
			input = tt.NewInput()
			if err := converter.DecodeArguments(ctx, input, ct.Arguments, evalCtx); err != nil {
				return fmt.Errorf("task %q: %w", ct.Name, err)
			}
		}
		action, err := tt.NewAction(env, input)
		if err != nil {
			return fmt.Errorf("task %q: %w", ct.Name, err)
		}

		t := task.New(ct.Name, tt.Kind)
		t.Description = ct.Description
		if t.Description == "" {
			t.Description = tt.Description
		}
		t.Group = groupOf(tt.Kind)
		t.DependsOn(ct.DependsOn...)
		t.DoLast(action)
		if err := a.project.Tasks.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// evalContext exposes project properties to task argument expressions.
func (a *App) evalContext(converter config.Converter) (*hcl.EvalContext, error) {
	projectVal, err := converter.ToCtyValue(map[string]string{
		"name":      a.project.Name,
		"root_dir":  a.project.RootDir,
		"build_dir": a.project.BuildPath(),
	})
	if err != nil {
		return nil, fmt.Errorf("building expression context: %w", err)
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{"project": projectVal}}, nil
}

// applyCoverage applies the clover plugin when the project asks for it,
// either through its plugin list or by declaring a clover block.
func (a *App) applyCoverage(model *config.Model, tool clover.Tool, runner command.Runner) error {
	if model.Clover == nil && !slices.Contains(model.Project.Plugins, coverage.PluginID) {
		return nil
	}
	conv := conventionOf(model.Clover)
	if tool == nil {
		jar := coverage.NewResolver(a.project, conv).CloverJar()
		tool = clover.NewCLITool(runner, jar)
	}
	plugin := &coverage.Plugin{Convention: conv, Tool: tool, Activations: a.metrics}
	return plugin.Apply(a.project)
}

func conventionOf(c *config.Clover) *coverage.Convention {
	if c == nil {
		return &coverage.Convention{}
	}
	return &coverage.Convention{
		ClassesBackupDir: c.ClassesBackupDir,
		LicenseFile:      c.LicenseFile,
		Includes:         c.Includes,
		Excludes:         c.Excludes,
		InitString:       c.InitString,
		ReportsDir:       c.ReportsDir,
		TargetPercentage: c.TargetPercentage,
		CloverJar:        c.CloverJar,
		XML:              c.XML,
		JSON:             c.JSON,
		HTML:             c.HTML,
		PDF:              c.PDF,
	}
}

func groupOf(kind task.Kind) string {
	switch kind {
	case task.KindTest:
		return "verification"
	case task.KindReport:
		return "report"
	case task.KindPublish:
		return "publishing"
	default:
		return "build"
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Project returns the configured project.
func (a *App) Project() *project.Project {
	return a.project
}

// Metrics returns the application's metrics.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// RunID identifies this invocation in logs.
func (a *App) RunID() string {
	return a.runID
}
