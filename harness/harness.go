// Package harness runs scheduling policies head-to-head over the same
// workload and collects completion metrics for each.
package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/logger"
	"github.com/ohsu-comp-bio/balancer/model"
	"github.com/ohsu-comp-bio/balancer/policy"
	"github.com/ohsu-comp-bio/balancer/util"
)

// Executor carries out an assignment plan and reports when each task
// started and finished.
type Executor interface {
	Execute(ctx context.Context, plan *model.Plan, tasks []model.Task, resources []model.Resource) ([]model.Completion, error)
}

// Observer is notified of the metrics of every completed policy run.
type Observer func(Metrics)

// Harness runs policies one after another. Each run gets a fresh copy of
// the tasks and resources.
type Harness struct {
	Executor  Executor
	Conf      config.Policy
	Observers []Observer
	Log       *logger.Logger
}

// New returns a new Harness.
func New(exec Executor, conf config.Policy, log *logger.Logger, obs ...Observer) *Harness {
	return &Harness{
		Executor:  exec,
		Conf:      conf,
		Observers: obs,
		Log:       log,
	}
}

// RunAll runs every policy over the tasks and resources and returns one
// Metrics record per policy, in the order the policies were given.
//
// When no random seed is configured, one seed is generated and shared by
// every policy so the run can be reproduced from its report.
// The first failing policy aborts the run.
func (h *Harness) RunAll(ctx context.Context, policies []policy.Policy, tasks []model.Task, resources []model.Resource) ([]Metrics, error) {
	if h.Executor == nil {
		return nil, fmt.Errorf("harness has no executor")
	}
	if err := model.Validate(tasks, resources); err != nil {
		return nil, err
	}
	if err := policy.ValidateConfig(h.Conf); err != nil {
		return nil, err
	}

	conf := h.Conf
	if _, ok := conf.Seed(); !ok {
		conf = conf.WithSeed(time.Now().UnixNano())
	}

	results := make([]Metrics, 0, len(policies))
	for _, p := range policies {
		m, err := h.runOne(ctx, p, tasks, resources, conf)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", p.Name(), err)
		}
		results = append(results, m)
		for _, obs := range h.Observers {
			obs(m)
		}
	}
	return results, nil
}

func (h *Harness) runOne(ctx context.Context, p policy.Policy, tasks []model.Task, resources []model.Resource, conf config.Policy) (Metrics, error) {
	ctx = context.WithValue(ctx, logger.PolicyKey, p.Name())

	// Every policy works on its own copy of the pools, and the executor
	// gets another, so nothing a policy does can leak into the next run.
	err := p.Initialize(model.CloneTasks(tasks), model.CloneResources(resources), conf)
	if err != nil {
		return Metrics{}, err
	}

	start := time.Now()
	plan, err := p.Assign(ctx)
	if err != nil {
		return Metrics{}, err
	}
	if err := plan.Validate(tasks, resources); err != nil {
		return Metrics{}, fmt.Errorf("invalid plan: %w", err)
	}
	h.Log.Debug("Assigned", ctx, "tasks", plan.Len(), "elapsed", time.Since(start).String())

	completions, err := h.Executor.Execute(ctx, plan, model.CloneTasks(tasks), model.CloneResources(resources))
	if err != nil {
		return Metrics{}, fmt.Errorf("executing plan: %w", err)
	}
	if len(completions) != len(tasks) {
		return Metrics{}, fmt.Errorf("executor reported %d completions for %d tasks", len(completions), len(tasks))
	}

	m := NewMetrics(p.Name(), plan.Seed, completions)
	h.Log.Info("Policy run complete", ctx,
		"total", m.TotalCompletionTime,
		"average", m.AverageCompletionTime,
		"makespan", m.Makespan,
	)
	return m, nil
}

// Report describes one comparison run.
type Report struct {
	ID        string
	CreatedAt time.Time
	Seed      int64
	Tasks     []model.Task
	Resources []model.Resource
	Metrics   []Metrics
}

// Run runs every policy like RunAll and returns a report of the whole run.
func (h *Harness) Run(ctx context.Context, policies []policy.Policy, tasks []model.Task, resources []model.Resource) (*Report, error) {
	id := util.GenRunID()
	ctx = context.WithValue(ctx, logger.RunIDKey, id)

	conf := h.Conf
	seed, ok := conf.Seed()
	if !ok {
		seed = time.Now().UnixNano()
		conf = conf.WithSeed(seed)
	}

	// Run with the resolved seed, without touching the caller's config.
	run := *h
	run.Conf = conf

	h.Log.Info("Starting comparison run", ctx, "policies", len(policies), "seed", seed)
	metrics, err := run.RunAll(ctx, policies, tasks, resources)
	if err != nil {
		return nil, err
	}

	return &Report{
		ID:        id,
		CreatedAt: time.Now(),
		Seed:      seed,
		Tasks:     model.CloneTasks(tasks),
		Resources: model.CloneResources(resources),
		Metrics:   metrics,
	}, nil
}
