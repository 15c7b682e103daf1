package config

import (
	"os"
	"path"
	"time"

	"github.com/ohsu-comp-bio/balancer/logger"
)

// Policy names understood by the policy registry.
const (
	RoundRobin       = "round-robin"
	ShortestJobFirst = "shortest-job-first"
	AgingPriority    = "aging-priority"
	Genetic          = "genetic"
	FirstComeFirst   = "first-come-first-serve"
)

// DefaultPolicies lists every policy, in the order they are compared.
func DefaultPolicies() []string {
	return []string{RoundRobin, ShortestJobFirst, AgingPriority, FirstComeFirst, Genetic}
}

// DefaultPolicyConfig returns the default tuning of the policies.
func DefaultPolicyConfig() Policy {
	return Policy{
		GenerationCount:      20,
		CrossoverProbability: 0.5,
		MutationProbability:  0.5,
		Workers:              1,
		AgingFactor:          1.0,
	}
}

// DefaultConfig returns configuration with simple defaults.
func DefaultConfig() Config {
	cwd, _ := os.Getwd()
	workDir := path.Join(cwd, "balancer-work-dir")

	return Config{
		Policies: DefaultPolicies(),
		Policy:   DefaultPolicyConfig(),
		Workload: Workload{
			Tasks:          40,
			Resources:      15,
			BaseLength:     1000,
			LengthStep:     20,
			BaseRate:       1000,
			RateStep:       10,
			Cores:          1,
			RandomPriority: true,
		},
		Logger: logger.DefaultConfig(),
		BoltDB: BoltDB{
			Path:    path.Join(workDir, "balancer.db"),
			Timeout: Duration(time.Second),
		},
		Output: Output{
			Format: "table",
		},
	}
}
