package policy

import (
	"github.com/gammazero/workerpool"
	"github.com/ohsu-comp-bio/balancer/model"
)

// Gene pairs one task with one resource.
type Gene struct {
	Task     model.Task
	Resource model.Resource
}

// Chromosome is a candidate plan: one gene per task.
type Chromosome []Gene

// Clone returns a copy of the chromosome which shares no genes with it.
func (c Chromosome) Clone() Chromosome {
	out := make(Chromosome, len(c))
	copy(out, c)
	return out
}

// Fitness estimates the total processing time of the chromosome as the sum
// of length/rate over its genes. Lower is better. Queueing on shared
// resources is not accounted for.
func (c Chromosome) Fitness() float64 {
	var sum float64
	for _, g := range c {
		sum += g.Task.Length / g.Resource.Rate
	}
	return sum
}

// Population is a fixed-size set of chromosomes.
type Population []Chromosome

// Crossover swaps the resource of gene g1 of chromosome i1 with the
// resource of gene g2 of chromosome i2. Both children replace their parents.
// When i1 == i2 the swap happens within that one chromosome.
func (p Population) Crossover(i1, g1, i2, g2 int) {
	c1 := p[i1].Clone()
	c2 := c1
	if i2 != i1 {
		c2 = p[i2].Clone()
	}
	c1[g1].Resource, c2[g2].Resource = c2[g2].Resource, c1[g1].Resource
	p[i1] = c1
	p[i2] = c2
}

// Fitness evaluates every chromosome. When workers > 1 the chromosomes are
// evaluated in parallel. Results are indexed by population position.
func (p Population) Fitness(workers int) []float64 {
	out := make([]float64, len(p))
	if workers <= 1 || len(p) < 2 {
		for i, c := range p {
			out[i] = c.Fitness()
		}
		return out
	}

	wp := workerpool.New(workers)
	for i, c := range p {
		i, c := i, c
		wp.Submit(func() {
			out[i] = c.Fitness()
		})
	}
	wp.StopWait()
	return out
}

// Fittest returns the index and fitness of the chromosome with the lowest
// fitness. Ties go to the lowest index.
func Fittest(fitness []float64) (int, float64) {
	best := -1
	var bestV float64
	for i, v := range fitness {
		if best == -1 || v < bestV {
			best, bestV = i, v
		}
	}
	return best, bestV
}

// Worst returns the highest fitness value.
func Worst(fitness []float64) float64 {
	var worst float64
	for i, v := range fitness {
		if i == 0 || v > worst {
			worst = v
		}
	}
	return worst
}
