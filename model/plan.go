package model

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Binding assigns one task to one resource.
type Binding struct {
	TaskID     int
	ResourceID int
}

// Plan is the result of a scheduling policy: an ordered list of bindings,
// one per task. The order is the submission order an executor must honor.
type Plan struct {
	Policy   string
	Seed     int64
	Bindings []Binding
}

// NewPlan returns an empty plan with room for n bindings.
func NewPlan(policy string, seed int64, n int) *Plan {
	return &Plan{
		Policy:   policy,
		Seed:     seed,
		Bindings: make([]Binding, 0, n),
	}
}

// Bind appends a binding to the plan.
func (p *Plan) Bind(taskID, resourceID int) {
	p.Bindings = append(p.Bindings, Binding{TaskID: taskID, ResourceID: resourceID})
}

// Len returns the number of bindings.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Bindings)
}

// Map returns the plan as a task ID -> resource ID map.
func (p *Plan) Map() map[int]int {
	m := make(map[int]int, p.Len())
	if p == nil {
		return m
	}
	for _, b := range p.Bindings {
		m[b.TaskID] = b.ResourceID
	}
	return m
}

// ResourceOf returns the resource the task is bound to.
func (p *Plan) ResourceOf(taskID int) (int, bool) {
	if p == nil {
		return 0, false
	}
	for _, b := range p.Bindings {
		if b.TaskID == taskID {
			return b.ResourceID, true
		}
	}
	return 0, false
}

// TaskOrder returns the task IDs in plan order.
func (p *Plan) TaskOrder() []int {
	ids := make([]int, 0, p.Len())
	if p == nil {
		return ids
	}
	for _, b := range p.Bindings {
		ids = append(ids, b.TaskID)
	}
	return ids
}

// Validate checks that the plan binds every task exactly once, and only
// to resources in the given pool.
func (p *Plan) Validate(tasks []Task, resources []Resource) error {
	if p == nil {
		return fmt.Errorf("nil plan")
	}
	var errs *multierror.Error

	known := TaskIndex(tasks)
	pool := ResourceIndex(resources)
	seen := make(map[int]bool, len(p.Bindings))

	for _, b := range p.Bindings {
		if _, ok := known[b.TaskID]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("unknown task %d", b.TaskID))
		}
		if seen[b.TaskID] {
			errs = multierror.Append(errs, fmt.Errorf("task %d bound more than once", b.TaskID))
		}
		seen[b.TaskID] = true
		if _, ok := pool[b.ResourceID]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("task %d bound to unknown resource %d", b.TaskID, b.ResourceID))
		}
	}
	for _, t := range tasks {
		if !seen[t.ID] {
			errs = multierror.Append(errs, fmt.Errorf("task %d not bound", t.ID))
		}
	}
	return errs.ErrorOrNil()
}

// Completion reports when an executed task started and finished, in ticks.
type Completion struct {
	TaskID     int
	ResourceID int
	Start      float64
	Finish     float64
}

// Elapsed returns the execution time of the task.
func (c Completion) Elapsed() float64 {
	return c.Finish - c.Start
}
