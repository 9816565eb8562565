package exec

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/clovergrid/internal/command"
	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/registry"
	"github.com/specialistvlad/clovergrid/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'arguments' HCL block.
type Input struct {
	Command []string          `arg:"command"`
	Dir     string            `arg:"dir,optional"`
	Env     map[string]string `arg:"env,optional"`
}

// Action runs one external command as a task body.
type Action struct {
	env   *registry.Env
	input *Input
}

func (a *Action) ActionName() string {
	return "exec"
}

// Execute implements task.Action.
func (a *Action) Execute(ctx context.Context, _ *task.Task) error {
	logger := ctxlog.FromContext(ctx)

	dir := a.env.Project.RootDir
	if a.input.Dir != "" {
		dir = a.env.Project.Path(a.input.Dir)
	}
	cmd := command.Cmd{
		Name:   a.input.Command[0],
		Args:   a.input.Command[1:],
		Dir:    dir,
		Env:    envList(a.input.Env),
		Stdout: a.env.Stdout,
		Stderr: a.env.Stderr,
	}
	logger.Debug("Running command.", "command", cmd.String(), "dir", dir)
	return command.Check(ctx, a.env.Runner, cmd)
}

func envList(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

func newAction(env *registry.Env, input any) (task.Action, error) {
	in := input.(*Input)
	if len(in.Command) == 0 {
		return nil, fmt.Errorf("command must not be empty")
	}
	return &Action{env: env, input: in}, nil
}

// Register registers the exec and test task types.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTaskType("exec", &registry.TaskType{
		Kind:        task.KindExec,
		Description: "Runs an external command.",
		NewInput:    func() any { return new(Input) },
		NewAction:   newAction,
	})
	r.RegisterTaskType("test", &registry.TaskType{
		Kind:        task.KindTest,
		Description: "Runs a test command.",
		NewInput:    func() any { return new(Input) },
		NewAction:   newAction,
	})
}
