package policy

import (
	"context"
	"time"

	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/model"
)

// Genetic searches for a plan with a simple genetic algorithm.
//
// The initial population holds one chromosome per task. Chromosome j binds
// sorted task i (ascending length) to sorted resource (i+j) mod M (descending
// rate). Each generation may cross two random chromosomes over by swapping
// the resource of one random gene in each, and may mutate one random gene of
// a random chromosome to the fastest resource. The fittest chromosome of the
// final population becomes the plan. There is no elitism, so the best fitness
// may regress between generations.
type Genetic struct {
	base

	sortedTasks     []model.Task
	sortedResources []model.Resource
	history         []float64
	generations     int
	population      Population
}

// NewGenetic returns a new Genetic policy.
func NewGenetic() *Genetic {
	return &Genetic{base: base{name: config.Genetic}}
}

// Initialize validates and snapshots the input. The search needs at least one task.
func (p *Genetic) Initialize(tasks []model.Task, resources []model.Resource, conf config.Policy) error {
	if len(tasks) == 0 {
		p.initialized = false
		return model.Configf("initializing %s: the population needs at least one task", p.name)
	}
	if err := p.init(tasks, resources, conf); err != nil {
		return err
	}

	p.sortedTasks = model.CloneTasks(p.tasks)
	model.SortTasksByLength(p.sortedTasks)
	p.sortedResources = model.CloneResources(p.resources)
	model.SortResourcesByRate(p.sortedResources)
	p.history = nil
	p.generations = 0
	p.population = nil
	return nil
}

// History returns the best fitness of the population before the first
// generation and after every generation which ran.
func (p *Genetic) History() []float64 {
	return append([]float64(nil), p.history...)
}

// Generations returns the number of generations the last search ran.
// It is lower than the configured count when the search was cut short.
func (p *Genetic) Generations() int {
	return p.generations
}

// Population returns the final population of the last search, or nil
// before Assign has run.
func (p *Genetic) Population() Population {
	return p.population
}

// InitialPopulation builds the rotation-based initial population.
func (p *Genetic) InitialPopulation() Population {
	n := len(p.sortedTasks)
	m := len(p.sortedResources)

	pop := make(Population, 0, n)
	for j := 0; j < n; j++ {
		c := make(Chromosome, 0, n)
		for i, t := range p.sortedTasks {
			c = append(c, Gene{Task: t, Resource: p.sortedResources[(i+j)%m]})
		}
		pop = append(pop, c)
	}
	return pop
}

// Assign runs the search and returns the plan of the fittest chromosome.
//
// The search stops early, keeping the current population, when ctx is done
// or the configured timeout expires.
func (p *Genetic) Assign(ctx context.Context) (*model.Plan, error) {
	if err := p.start(); err != nil {
		return nil, err
	}

	if p.conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(p.conf.Timeout))
		defer cancel()
	}

	pop := p.InitialPopulation()
	_, best := Fittest(pop.Fitness(p.conf.Workers))
	p.history = append(p.history, best)

	for gen := 0; gen < p.conf.GenerationCount; gen++ {
		if err := ctx.Err(); err != nil {
			log.Info("Stopping search early",
				"policy", p.name,
				"generation", gen,
				"reason", err,
			)
			break
		}
		p.evolve(pop)
		p.generations++

		_, best = Fittest(pop.Fitness(p.conf.Workers))
		p.history = append(p.history, best)
	}

	p.population = pop
	fitness := pop.Fitness(p.conf.Workers)
	idx, best := Fittest(fitness)
	log.Debug("Selected fittest chromosome",
		"policy", p.name,
		"index", idx,
		"fitness", best,
		"worst", Worst(fitness),
		"generations", p.generations,
	)

	plan := model.NewPlan(p.name, p.seed, len(pop[idx]))
	for _, g := range pop[idx] {
		plan.Bind(g.Task.ID, g.Resource.ID)
	}
	return plan, nil
}

// evolve runs one generation over the population, in place.
func (p *Genetic) evolve(pop Population) {
	size := len(pop)
	n := len(p.sortedTasks)

	i1 := p.rand.Intn(size)
	i2 := p.rand.Intn(size)

	if p.rand.Float64() < p.conf.CrossoverProbability {
		pop.Crossover(i1, p.rand.Intn(n), i2, p.rand.Intn(n))
	}

	if p.rand.Float64() < p.conf.MutationProbability {
		k := p.rand.Intn(size)
		g := p.rand.Intn(n)

		mutated := pop[k].Clone()
		mutated[g].Resource = p.sortedResources[0]
		if !p.conf.DiscardMutation {
			pop[k] = mutated
		}
	}
}
