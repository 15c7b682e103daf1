// Package sim is a space-shared execution substrate. It runs an assignment
// plan against a resource pool and reports when each task finished.
package sim

import (
	"context"
	"fmt"

	"github.com/ohsu-comp-bio/balancer/logger"
	"github.com/ohsu-comp-bio/balancer/model"
)

// Executor runs plans on simulated resources. Each resource runs up to
// Cores tasks at once, each at the resource's full rate. Tasks are started
// in plan order on the earliest free core of their resource.
type Executor struct {
	Log *logger.Logger
}

// NewExecutor returns a new space-shared executor.
func NewExecutor(log *logger.Logger) *Executor {
	return &Executor{Log: log}
}

// node tracks when each core of one resource becomes free.
type node struct {
	res  model.Resource
	free []float64
}

func newNode(r model.Resource) *node {
	return &node{res: r, free: make([]float64, r.Cores)}
}

// run starts a task on the earliest free core and returns its start and
// finish times. Ties go to the lowest core index.
func (n *node) run(length float64) (float64, float64) {
	core := 0
	for i := range n.free {
		if n.free[i] < n.free[core] {
			core = i
		}
	}
	start := n.free[core]
	finish := start + length/n.res.Rate
	n.free[core] = finish
	return start, finish
}

// Execute runs the plan and returns one completion per binding, in plan order.
func (e *Executor) Execute(ctx context.Context, plan *model.Plan, tasks []model.Task, resources []model.Resource) ([]model.Completion, error) {
	if err := plan.Validate(tasks, resources); err != nil {
		return nil, fmt.Errorf("executing plan: %w", err)
	}

	byID := model.TaskIndex(tasks)
	nodes := map[int]*node{}
	for _, r := range resources {
		nodes[r.ID] = newNode(r)
	}

	out := make([]model.Completion, 0, plan.Len())
	for _, b := range plan.Bindings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start, finish := nodes[b.ResourceID].run(byID[b.TaskID].Length)
		out = append(out, model.Completion{
			TaskID:     b.TaskID,
			ResourceID: b.ResourceID,
			Start:      start,
			Finish:     finish,
		})
	}

	e.Log.Debug("Executed plan", "policy", plan.Policy, "tasks", len(out))
	return out, nil
}
