package model

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
)

// Priority level bounds. Zero is also accepted and means "unset".
const (
	MinPriorityLevel = 1
	MaxPriorityLevel = 10
)

// ValidateTasks checks every task and returns a ConfigurationError
// listing all problems found.
func ValidateTasks(tasks []Task) error {
	return asConfigError(checkTasks(nil, tasks))
}

// ValidateResources checks the resource pool and returns a ConfigurationError
// listing all problems found. An empty pool is an error.
func ValidateResources(resources []Resource) error {
	return asConfigError(checkResources(nil, resources))
}

// Validate checks both pools and returns a single ConfigurationError
// listing all problems found.
func Validate(tasks []Task, resources []Resource) error {
	errs := checkTasks(nil, tasks)
	errs = checkResources(errs, resources)
	return asConfigError(errs)
}

func checkTasks(errs *multierror.Error, tasks []Task) *multierror.Error {
	seen := make(map[int]bool, len(tasks))

	for i, t := range tasks {
		if seen[t.ID] {
			errs = multierror.Append(errs, fmt.Errorf("task at %d: duplicate ID %d", i, t.ID))
		}
		seen[t.ID] = true

		if !(t.Length > 0) || math.IsInf(t.Length, 1) {
			errs = multierror.Append(errs, fmt.Errorf("task %d: length must be positive and finite, got %v", t.ID, t.Length))
		}
		if t.PriorityLevel != 0 &&
			(t.PriorityLevel < MinPriorityLevel || t.PriorityLevel > MaxPriorityLevel) {
			errs = multierror.Append(errs, fmt.Errorf(
				"task %d: priority level must be in [%d,%d], got %d",
				t.ID, MinPriorityLevel, MaxPriorityLevel, t.PriorityLevel,
			))
		}
	}
	return errs
}

func checkResources(errs *multierror.Error, resources []Resource) *multierror.Error {
	if len(resources) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("resource pool is empty"))
	}

	seen := make(map[int]bool, len(resources))
	for i, r := range resources {
		if seen[r.ID] {
			errs = multierror.Append(errs, fmt.Errorf("resource at %d: duplicate ID %d", i, r.ID))
		}
		seen[r.ID] = true

		if !(r.Rate > 0) || math.IsInf(r.Rate, 1) {
			errs = multierror.Append(errs, fmt.Errorf("resource %d: rate must be positive and finite, got %v", r.ID, r.Rate))
		}
		if r.Cores <= 0 {
			errs = multierror.Append(errs, fmt.Errorf("resource %d: core count must be positive, got %d", r.ID, r.Cores))
		}
	}
	return errs
}
