// Package config defines the format-agnostic configuration model for a
// project build, along with the core interfaces (Loader, Converter) for
// loading and interpreting configuration from various sources.
//
// The `config.Model` is what the app turns into a project, its tasks and
// the coverage plugin's overrides. Concrete implementations of the
// interfaces, such as for HCL, are provided in separate packages.
package config
