package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths, translates it into the
	// format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter binds raw task arguments to the Go input structs of task types.
type Converter interface {
	// DecodeArguments evaluates args in evalCtx and populates the fields of
	// target, a pointer to a struct whose fields carry `arg` tags.
	DecodeArguments(
		ctx context.Context,
		target any,
		args map[string]hcl.Expression,
		evalCtx *hcl.EvalContext,
	) error

	// ToCtyValue converts a native Go value into its cty.Value, e.g. to
	// expose project properties as expression variables.
	ToCtyValue(v any) (cty.Value, error)
}
