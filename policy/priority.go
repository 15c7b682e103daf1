package policy

import (
	"context"
	"sort"

	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/model"
)

// AgingPriority orders tasks by a priority value which grows with the
// time a task has waited, then binds them round-robin.
//
// The value of a task starts at level*100 and is recomputed as
//
//	level*100 + agingFactor * elapsed * level
//
// where elapsed is the number of logical ticks between the task's
// submission and the clock's current reading.
type AgingPriority struct {
	base
	// clock given by the caller, or nil.
	clock Clock
	now   Clock

	entries []*agingEntry
}

type agingEntry struct {
	task     model.Task
	level    int
	priority float64
	waited   int64
}

// refresh recomputes the priority value at the given tick.
func (e *agingEntry) refresh(now int64, agingFactor float64) {
	e.waited = now - e.task.SubmittedAt
	if e.waited < 0 {
		e.waited = 0
	}
	lvl := float64(e.level)
	e.priority = lvl*100 + agingFactor*float64(e.waited)*lvl
}

// NewAgingPriority returns a new AgingPriority policy reading the given clock.
// When clock is nil, Initialize creates a logical clock positioned at the
// latest submission tick of the tasks.
func NewAgingPriority(clock Clock) *AgingPriority {
	return &AgingPriority{
		base:  base{name: config.AgingPriority},
		clock: clock,
	}
}

// Initialize validates and snapshots the input, and assigns a priority
// level to every task which has none.
func (p *AgingPriority) Initialize(tasks []model.Task, resources []model.Resource, conf config.Policy) error {
	if err := p.init(tasks, resources, conf); err != nil {
		return err
	}

	var latest int64
	p.entries = make([]*agingEntry, 0, len(p.tasks))
	for _, t := range p.tasks {
		lvl := t.PriorityLevel
		if lvl == 0 {
			lvl = model.MinPriorityLevel + p.rand.Intn(model.MaxPriorityLevel-model.MinPriorityLevel+1)
		}
		e := &agingEntry{task: t, level: lvl, priority: float64(lvl) * 100}
		p.entries = append(p.entries, e)
		if t.SubmittedAt > latest {
			latest = t.SubmittedAt
		}
	}
	sort.SliceStable(p.entries, func(i, j int) bool {
		return p.entries[i].task.SubmittedAt < p.entries[j].task.SubmittedAt
	})

	p.now = p.clock
	if p.now == nil {
		p.now = NewLogicalClock(latest)
	}
	return nil
}

// Refresh recomputes the priority value of every waiting task at the
// clock's current reading.
func (p *AgingPriority) Refresh() {
	if p.now == nil {
		return
	}
	now := p.now.Now()
	for _, e := range p.entries {
		e.refresh(now, p.conf.AgingFactor)
	}
}

// Priorities returns the last computed priority value of every task, by task ID.
func (p *AgingPriority) Priorities() map[int]float64 {
	out := make(map[int]float64, len(p.entries))
	for _, e := range p.entries {
		out[e.task.ID] = e.priority
	}
	return out
}

// Assign refreshes every priority value, sorts tasks by descending value,
// and returns the plan. Ties keep submission order.
func (p *AgingPriority) Assign(ctx context.Context) (*model.Plan, error) {
	if err := p.start(); err != nil {
		return nil, err
	}
	p.Refresh()

	sorted := make([]*agingEntry, len(p.entries))
	copy(sorted, p.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].priority > sorted[j].priority
	})

	ordered := make([]model.Task, 0, len(sorted))
	for _, e := range sorted {
		log.Debug("Task priority",
			"policy", p.name,
			"taskID", e.task.ID,
			"level", e.level,
			"priority", e.priority,
			"waited", e.waited,
		)
		ordered = append(ordered, e.task)
	}
	return p.bindRoundRobin(ordered), nil
}
