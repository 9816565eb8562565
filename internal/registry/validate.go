package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/clovergrid/internal/ctxlog"
	"github.com/specialistvlad/clovergrid/internal/hcl"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValidateRegistry checks that every task type is complete and that every
// tagged input field has a type the argument decoder can target.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.Names() {
		tt := r.TaskTypes[name]
		if tt.NewAction == nil {
			errs = append(errs, fmt.Sprintf("task type '%s': no action factory", name))
		}
		if tt.Kind == "" {
			errs = append(errs, fmt.Sprintf("task type '%s': no kind", name))
		}
		if tt.NewInput == nil {
			continue
		}

		input := reflect.TypeOf(tt.NewInput())
		if input == nil || input.Kind() != reflect.Ptr || input.Elem().Kind() != reflect.Struct {
			errs = append(errs, fmt.Sprintf("task type '%s': NewInput must return a pointer to a struct, got %v", name, input))
			continue
		}
		input = input.Elem()

		seen := make(map[string]string)
		for i := 0; i < input.NumField(); i++ {
			field := input.Field(i)
			argName, _, ok := hcl.ParseArgTag(field)
			if !ok {
				continue
			}
			if !field.IsExported() {
				errs = append(errs, fmt.Sprintf("task type '%s': argument '%s' is bound to unexported field '%s'", name, argName, field.Name))
				continue
			}
			if prev, dup := seen[argName]; dup {
				errs = append(errs, fmt.Sprintf("task type '%s': argument '%s' is bound to both '%s' and '%s'", name, argName, prev, field.Name))
				continue
			}
			seen[argName] = field.Name

			zero := reflect.New(field.Type).Elem().Interface()
			if _, err := gocty.ImpliedType(zero); err != nil {
				errs = append(errs, fmt.Sprintf("task type '%s': argument '%s' has unsupported Go type %s: %v", name, argName, field.Type, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validation successful.", "task_types", len(r.TaskTypes))
	return nil
}
