// Package model describes the tasks, resources and assignment plans
// shared by every scheduling policy.
package model

import (
	"sort"
)

// Task is a unit of work. Tasks are read-only once created.
type Task struct {
	ID int
	// Length of the task, in work units.
	Length float64
	// PriorityLevel in [1,10]. Zero means unset; policies that need a level assign one.
	PriorityLevel int `json:",omitempty"`
	// SubmittedAt is the logical tick at which the task was submitted.
	SubmittedAt int64 `json:",omitempty"`
}

// Resource is a unit of compute capacity. Resources are read-only for a run.
type Resource struct {
	ID int
	// Rate of a single core, in work units per tick.
	Rate  float64
	Cores int
}

// Capacity is the combined processing rate of all the resource's cores.
func (r Resource) Capacity() float64 {
	return r.Rate * float64(r.Cores)
}

// CloneTasks returns a copy of the task list.
func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// CloneResources returns a copy of the resource list.
func CloneResources(resources []Resource) []Resource {
	if resources == nil {
		return nil
	}
	out := make([]Resource, len(resources))
	copy(out, resources)
	return out
}

// SortTasksByLength sorts tasks by ascending length. Ties keep their relative order.
// This modifies the list in place.
func SortTasksByLength(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Length < tasks[j].Length
	})
}

// SortResourcesByRate sorts resources by descending rate. Ties keep their relative order.
// This modifies the list in place.
func SortResourcesByRate(resources []Resource) {
	sort.SliceStable(resources, func(i, j int) bool {
		return resources[i].Rate > resources[j].Rate
	})
}

// TaskIndex maps task ID -> task.
func TaskIndex(tasks []Task) map[int]Task {
	idx := make(map[int]Task, len(tasks))
	for _, t := range tasks {
		idx[t.ID] = t
	}
	return idx
}

// ResourceIndex maps resource ID -> resource.
func ResourceIndex(resources []Resource) map[int]Resource {
	idx := make(map[int]Resource, len(resources))
	for _, r := range resources {
		idx[r.ID] = r
	}
	return idx
}
