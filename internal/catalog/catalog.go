// Package catalog provides the fixed maintenance task price list.
// The catalog is loaded once at startup from an embedded YAML file and is
// read-only for the lifetime of the process.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tasks.yaml
var tasksYAML []byte

// Task is a single orderable maintenance job.
type Task struct {
	ID    string  `yaml:"id" json:"id"`
	Label string  `yaml:"label" json:"label"`
	Cost  float64 `yaml:"cost" json:"cost"`
	// Dynamic marks tasks whose price is derived from vehicle attributes
	// (oil change, spark plugs) rather than the flat cost.
	Dynamic bool `yaml:"dynamic,omitempty" json:"dynamic,omitempty"`
}

// Catalog is an ordered, immutable set of tasks.
type Catalog struct {
	tasks []Task
	byID  map[string]Task
}

type catalogFile struct {
	Tasks []Task `yaml:"tasks"`
}

// Load parses the embedded task list.
func Load() (*Catalog, error) {
	return parse(tasksYAML)
}

func parse(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse task catalog: %w", err)
	}
	if len(file.Tasks) == 0 {
		return nil, fmt.Errorf("task catalog is empty")
	}

	byID := make(map[string]Task, len(file.Tasks))
	for _, t := range file.Tasks {
		if t.ID == "" || t.Label == "" {
			return nil, fmt.Errorf("task catalog entry missing id or label")
		}
		if t.Cost < 0 {
			return nil, fmt.Errorf("task %q has negative cost", t.ID)
		}
		if _, dup := byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate task id %q", t.ID)
		}
		byID[t.ID] = t
	}

	return &Catalog{tasks: file.Tasks, byID: byID}, nil
}

// Tasks returns all tasks in display order.
func (c *Catalog) Tasks() []Task {
	out := make([]Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// ByID looks up a task by its identifier.
func (c *Catalog) ByID(id string) (Task, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// IDs returns all task identifiers in display order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.tasks))
	for i, t := range c.tasks {
		ids[i] = t.ID
	}
	return ids
}

// Len returns the number of tasks.
func (c *Catalog) Len() int {
	return len(c.tasks)
}
