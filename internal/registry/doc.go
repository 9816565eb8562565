// Package registry provides the central "glue" for the module system.
//
// The Registry stores the mapping between the type label of a `task` block
// (e.g. "exec" in `task "exec" "compileJava"`) and the compiled Go code that
// implements it: the input struct its arguments decode into, the task kind,
// and a factory for the task's action.
//
// During application startup, every module registers its task types and the
// registry is validated, so that a malformed input struct fails fast instead
// of at decode time.
package registry
