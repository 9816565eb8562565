// Package dag provides the directed acyclic graph that backs a build's task
// graph. Nodes are identified by task name; an edge from A to B records that
// B depends on A.
//
// The graph knows nothing about tasks or actions. The scheduler package uses
// it to validate dependencies, detect cycles and compute a deterministic
// execution order for a set of requested tasks.
package dag
