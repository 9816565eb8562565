package app

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/specialistvlad/clovergrid/internal/task"
)

// ListTasks writes a project summary followed by every registered task,
// grouped and sorted by name.
func (a *App) ListTasks(w io.Writer) error {
	if err := a.writeProjectSummary(w); err != nil {
		return err
	}

	groups := make(map[string][]*task.Task)
	for _, t := range a.project.Tasks.All() {
		groups[t.Group] = append(groups[t.Group], t)
	}
	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	for _, g := range names {
		title := "Other tasks"
		if g != "" {
			title = strings.ToUpper(g[:1]) + g[1:] + " tasks"
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("-", len(title))); err != nil {
			return err
		}
		tasks := groups[g]
		sort.Slice(tasks, func(i, j int) bool { return tasks[i].Name() < tasks[j].Name() })
		for _, t := range tasks {
			line := t.Name()
			if t.Description != "" {
				line += " - " + t.Description
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) writeProjectSummary(w io.Writer) error {
	sets := a.project.SourceSets()
	setNames := make([]string, len(sets))
	for i, ss := range sets {
		setNames[i] = ss.Name
	}
	_, err := fmt.Fprintf(w, "Project '%s'\nPlugins: %s\nSource sets: %s\n\n",
		a.project.Name, strings.Join(a.project.Plugins(), ", "), strings.Join(setNames, ", "))
	return err
}
