// Package coverage wires the Clover coverage tool into the build.
//
// Applying the plugin registers the cloverReport task and makes it depend on
// every test task. Instrumentation is attached lazily: when the task graph
// is finalized, and only if cloverReport is part of the plan, each planned
// test task gets one InstrumentAction prepended to its action list. A build
// that only runs tests pays nothing.
//
// Settings come from a Resolver that applies explicit overrides from the
// clover block and otherwise derives conventions from the project model.
// Nothing is resolved until an action actually runs.
package coverage
