package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectPath string   // hcl file or directory
	Tasks       []string // requested task names

	LogFormat         string
	LogLevel          string
	MetricsPort       int
	ContinueOnFailure bool
	DryRun            bool
	ListTasks         bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	if !cfg.ListTasks && len(cfg.Tasks) == 0 {
		return nil, errors.New("at least one task name is required")
	}
	return &cfg, nil
}
