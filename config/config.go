// Package config contains balancer configuration and its defaults.
package config

import (
	"github.com/ohsu-comp-bio/balancer/logger"
)

// Config describes configuration for balancer.
type Config struct {
	// Names of the policies to compare, in run order.
	Policies []string
	Policy   Policy
	Workload Workload
	Logger   logger.Config
	BoltDB   BoltDB
	Metrics  Metrics
	Output   Output
}

// Policy describes the tuning of the scheduling policies.
// Options which don't apply to a policy are ignored by it.
type Policy struct {
	// Number of EVOLVE generations run by the genetic policy.
	GenerationCount int
	// Probability, in [0,1], that a generation performs crossover.
	CrossoverProbability float64
	// Probability, in [0,1], that a generation performs mutation.
	MutationProbability float64
	// Discard mutated chromosomes instead of writing them back into the
	// population. Reproduces the historical behavior where mutation had no effect.
	DiscardMutation bool
	// Number of workers evaluating fitness in parallel. Values <= 1 evaluate sequentially.
	Workers int
	// Wall-clock cap on the genetic search. Zero means no cap.
	Timeout Duration
	// Weight of elapsed wait time, in logical ticks, in the aging priority value.
	AgingFactor float64
	// Seed for every random decision. When nil, a seed is derived from the
	// current time and recorded in the resulting plan.
	RandomSeed *int64
}

// Workload describes the tasks and resources a comparison runs over.
// When File is set the workload is loaded from it, otherwise it is generated.
type Workload struct {
	File       string
	Tasks      int
	Resources  int
	BaseLength float64
	LengthStep float64
	BaseRate   float64
	RateStep   float64
	Cores      int
	// Assign random priority levels (1-10) to generated tasks.
	RandomPriority bool
}

// BoltDB describes configuration for the BoltDB report store.
// An empty Path disables persistence.
type BoltDB struct {
	Path string
	// How long to wait for the database file lock on each open attempt.
	Timeout Duration
}

// Metrics describes configuration for Prometheus metrics export.
type Metrics struct {
	// Path of a node-exporter textfile written after a comparison. Empty disables it.
	TextfilePath string
}

// Output describes how comparison results are rendered.
type Output struct {
	// Table format: "table" or "csv".
	Format string
	// Optional CSV file written in addition to the console output.
	CSVPath string
}

// Seed returns the configured random seed and whether one was set.
func (p Policy) Seed() (int64, bool) {
	if p.RandomSeed == nil {
		return 0, false
	}
	return *p.RandomSeed, true
}

// WithSeed returns a copy of the policy configuration using the given seed.
func (p Policy) WithSeed(seed int64) Policy {
	p.RandomSeed = &seed
	return p
}
