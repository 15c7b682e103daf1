// Package policy contains the interchangeable strategies which assign
// tasks to resources.
package policy

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/logger"
	"github.com/ohsu-comp-bio/balancer/model"
)

var log = logger.NewSubLogger("policy")

// Policy assigns every task to a resource.
//
// Initialize takes a private copy of the tasks and resources, so callers
// may reuse or modify their slices afterwards. Assign may be called once per
// Initialize; calling it again returns a *model.InvalidStateError.
// Initializing twice with the same input and seed produces the same plan.
type Policy interface {
	Name() string
	Initialize(tasks []model.Task, resources []model.Resource, conf config.Policy) error
	Assign(ctx context.Context) (*model.Plan, error)
}

// New returns the policy registered under the given name.
func New(name string) (Policy, error) {
	switch name {
	case config.RoundRobin:
		return NewRoundRobin(), nil
	case config.ShortestJobFirst:
		return NewShortestJobFirst(), nil
	case config.AgingPriority:
		return NewAgingPriority(nil), nil
	case config.Genetic:
		return NewGenetic(), nil
	case config.FirstComeFirst:
		return NewFirstComeFirstServe(), nil
	}
	return nil, model.Configf("unknown policy %q", name)
}

// NewAll returns the policies registered under the given names, in order.
func NewAll(names []string) ([]Policy, error) {
	out := make([]Policy, 0, len(names))
	for _, n := range names {
		p, err := New(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ValidateConfig checks the policy configuration.
func ValidateConfig(conf config.Policy) error {
	switch {
	case conf.CrossoverProbability < 0 || conf.CrossoverProbability > 1:
		return model.Configf("crossover probability must be in [0,1], got %v", conf.CrossoverProbability)
	case conf.MutationProbability < 0 || conf.MutationProbability > 1:
		return model.Configf("mutation probability must be in [0,1], got %v", conf.MutationProbability)
	case conf.GenerationCount < 0:
		return model.Configf("generation count must not be negative, got %d", conf.GenerationCount)
	case conf.AgingFactor < 0:
		return model.Configf("aging factor must not be negative, got %v", conf.AgingFactor)
	case conf.Timeout < 0:
		return model.Configf("timeout must not be negative, got %s", conf.Timeout.String())
	}
	return nil
}

// base holds the state shared by every policy: the per-run snapshot of
// the input, the configuration and the seeded random source.
type base struct {
	name      string
	tasks     []model.Task
	resources []model.Resource
	conf      config.Policy
	seed      int64
	rand      *rand.Rand

	initialized bool
	assigned    bool
}

func (b *base) Name() string {
	return b.name
}

func (b *base) init(tasks []model.Task, resources []model.Resource, conf config.Policy) error {
	b.initialized = false

	if err := model.Validate(tasks, resources); err != nil {
		return fmt.Errorf("initializing %s: %w", b.name, err)
	}
	if err := ValidateConfig(conf); err != nil {
		return fmt.Errorf("initializing %s: %w", b.name, err)
	}

	seed, ok := conf.Seed()
	if !ok {
		seed = time.Now().UnixNano()
		log.Debug("No random seed configured, generated one", "policy", b.name, "seed", seed)
	}

	b.tasks = model.CloneTasks(tasks)
	b.resources = model.CloneResources(resources)
	b.conf = conf
	b.seed = seed
	b.rand = rand.New(rand.NewSource(seed))
	b.initialized = true
	b.assigned = false
	return nil
}

// start checks that Assign may run, and marks the policy as assigned.
func (b *base) start() error {
	switch {
	case !b.initialized:
		return &model.InvalidStateError{Policy: b.name, Op: "Assign", Reason: "not initialized"}
	case b.assigned:
		return &model.InvalidStateError{Policy: b.name, Op: "Assign", Reason: "already assigned, initialize again"}
	}
	b.assigned = true
	return nil
}

// bindRoundRobin binds the ordered tasks to the resources in turn.
func (b *base) bindRoundRobin(ordered []model.Task) *model.Plan {
	plan := model.NewPlan(b.name, b.seed, len(ordered))
	for i, t := range ordered {
		plan.Bind(t.ID, b.resources[i%len(b.resources)].ID)
	}
	return plan
}

// RoundRobin binds the task at input position i to resource i mod M.
type RoundRobin struct {
	base
}

// NewRoundRobin returns a new RoundRobin policy.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{base{name: config.RoundRobin}}
}

// Initialize validates and snapshots the input.
func (p *RoundRobin) Initialize(tasks []model.Task, resources []model.Resource, conf config.Policy) error {
	return p.init(tasks, resources, conf)
}

// Assign returns the plan.
func (p *RoundRobin) Assign(ctx context.Context) (*model.Plan, error) {
	if err := p.start(); err != nil {
		return nil, err
	}
	return p.bindRoundRobin(p.tasks), nil
}

// ShortestJobFirst orders tasks by their normalized cost on a reference
// resource, the first in the pool, then binds them round-robin.
type ShortestJobFirst struct {
	base
}

// NewShortestJobFirst returns a new ShortestJobFirst policy.
func NewShortestJobFirst() *ShortestJobFirst {
	return &ShortestJobFirst{base{name: config.ShortestJobFirst}}
}

// Initialize validates and snapshots the input.
func (p *ShortestJobFirst) Initialize(tasks []model.Task, resources []model.Resource, conf config.Policy) error {
	return p.init(tasks, resources, conf)
}

// Assign returns the plan.
func (p *ShortestJobFirst) Assign(ctx context.Context) (*model.Plan, error) {
	if err := p.start(); err != nil {
		return nil, err
	}

	ref := p.resources[0].Capacity()
	ordered := model.CloneTasks(p.tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Length/ref < ordered[j].Length/ref
	})
	return p.bindRoundRobin(ordered), nil
}

// FirstComeFirstServe orders tasks by submission tick, then binds them round-robin.
type FirstComeFirstServe struct {
	base
}

// NewFirstComeFirstServe returns a new FirstComeFirstServe policy.
func NewFirstComeFirstServe() *FirstComeFirstServe {
	return &FirstComeFirstServe{base{name: config.FirstComeFirst}}
}

// Initialize validates and snapshots the input.
func (p *FirstComeFirstServe) Initialize(tasks []model.Task, resources []model.Resource, conf config.Policy) error {
	return p.init(tasks, resources, conf)
}

// Assign returns the plan.
func (p *FirstComeFirstServe) Assign(ctx context.Context) (*model.Plan, error) {
	if err := p.start(); err != nil {
		return nil, err
	}

	ordered := model.CloneTasks(p.tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SubmittedAt < ordered[j].SubmittedAt
	})
	return p.bindRoundRobin(ordered), nil
}
