package harness

import (
	"sort"

	"github.com/ohsu-comp-bio/balancer/model"
)

// Metrics summarizes one policy run. Times are in simulation ticks.
type Metrics struct {
	Policy string
	// Sum of the execution time of every task.
	TotalCompletionTime float64
	// TotalCompletionTime divided by the number of tasks.
	AverageCompletionTime float64
	// Latest finish time over all tasks.
	Makespan float64
	Seed     int64
}

// NewMetrics computes the metrics of a run from its completions.
func NewMetrics(policy string, seed int64, completions []model.Completion) Metrics {
	m := Metrics{Policy: policy, Seed: seed}
	for _, c := range completions {
		m.TotalCompletionTime += c.Elapsed()
		if c.Finish > m.Makespan {
			m.Makespan = c.Finish
		}
	}
	if len(completions) > 0 {
		m.AverageCompletionTime = m.TotalCompletionTime / float64(len(completions))
	}
	return m
}

// Rank returns a copy of the metrics sorted by total completion time,
// best first. Equal totals are ordered by makespan, then by input order.
func Rank(metrics []Metrics) []Metrics {
	out := make([]Metrics, len(metrics))
	copy(out, metrics)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalCompletionTime != out[j].TotalCompletionTime {
			return out[i].TotalCompletionTime < out[j].TotalCompletionTime
		}
		return out[i].Makespan < out[j].Makespan
	})
	return out
}
