package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/clovergrid/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type flags struct {
	project           string
	logFormat         string
	logLevel          string
	metricsPort       int
	continueOnFailure bool
	dryRun            bool
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var f flags
	var parsed *app.Config
	var validationErr error

	build := func(tasks []string, listTasks bool) {
		parsed, validationErr = f.toConfig(tasks, listTasks)
	}

	root := &cobra.Command{
		Use:   "clovergrid [flags] TASK...",
		Short: "clovergrid - a task runner for JVM projects with Clover coverage.",
		Long: `clovergrid runs the tasks of an HCL-described JVM project in dependency order.

Requesting the cloverReport task instruments the production sources before
every test task and generates a Clover coverage report afterwards.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errors.New("at least one task name is required")
			}
			build(args, false)
			return nil
		},
	}
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	pf := root.PersistentFlags()
	pf.StringVarP(&f.project, "project", "p", "build.hcl", "Path to the project file or a directory of .hcl files.")
	pf.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.IntVar(&f.metricsPort, "metrics-port", 0, "Port for the /health and /metrics HTTP server. 0 is disabled.")
	root.Flags().BoolVar(&f.continueOnFailure, "continue", false, "Keep running tasks that do not depend on a failed task.")
	root.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the planned tasks without running them.")

	root.AddCommand(&cobra.Command{
		Use:   "tasks",
		Short: "List the project's tasks by group.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			build(nil, true)
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if validationErr != nil {
		var exitErr *ExitError
		if errors.As(validationErr, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: validationErr.Error()}
	}
	if parsed == nil {
		// Help was printed.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", parsed)
	return parsed, false, nil
}

func (f *flags) toConfig(tasks []string, listTasks bool) (*app.Config, error) {
	logFormat := strings.ToLower(f.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(f.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if f.metricsPort < 0 {
		return nil, &ExitError{Code: 2, Message: fmt.Sprintf("invalid metrics-port: %d", f.metricsPort)}
	}

	return app.NewConfig(app.Config{
		ProjectPath:       f.project,
		Tasks:             tasks,
		LogFormat:         logFormat,
		LogLevel:          logLevel,
		MetricsPort:       f.metricsPort,
		ContinueOnFailure: f.continueOnFailure,
		DryRun:            f.dryRun,
		ListTasks:         listTasks,
	})
}
