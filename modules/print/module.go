package print

import (
	"context"
	"fmt"

	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/registry"
	"github.com/specialistvlad/clovergrid/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the print task type.
type Input struct {
	Message string `arg:"message"`
}

type action struct {
	env   *registry.Env
	input *Input
}

func (a *action) ActionName() string {
	return "print"
}

// Execute logs the message and writes it to the run output.
func (a *action) Execute(ctx context.Context, _ *task.Task) error {
	ctxlog.FromContext(ctx).Info("Printing message")
	if a.env.Stdout == nil {
		return nil
	}
	_, err := fmt.Fprintf(a.env.Stdout, "      %s\n", a.input.Message)
	return err
}

// Register registers the print task type.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTaskType("print", &registry.TaskType{
		Kind:        task.KindExec,
		Description: "Prints a message.",
		NewInput:    func() any { return new(Input) },
		NewAction: func(env *registry.Env, input any) (task.Action, error) {
			return &action{env: env, input: input.(*Input)}, nil
		},
	})
}
