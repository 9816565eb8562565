package task

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateTask is returned when a task name is registered twice.
var ErrDuplicateTask = errors.New("task already registered")

// Container holds every task defined for a build, in registration order.
type Container struct {
	mu     sync.RWMutex
	byName map[string]*Task
	order  []*Task
}

// NewContainer creates an empty task container.
func NewContainer() *Container {
	return &Container{byName: make(map[string]*Task)}
}

// Register adds a task to the container.
func (c *Container) Register(t *Task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byName[t.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, t.Name())
	}
	c.byName[t.Name()] = t
	c.order = append(c.order, t)
	return nil
}

// Get looks up a task by name.
func (c *Container) Get(name string) (*Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byName[name]
	return t, ok
}

// All returns every task in registration order.
func (c *Container) All() []*Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Task, len(c.order))
	copy(out, c.order)
	return out
}

// OfKind returns every task of the given kind in registration order.
func (c *Container) OfKind(kind Kind) []*Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*Task
	for _, t := range c.order {
		if t.Kind() == kind {
			out = append(out, t)
		}
	}
	return out
}
