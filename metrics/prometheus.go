// Package metrics exports comparison results as Prometheus metrics.
package metrics

import (
	"github.com/ohsu-comp-bio/balancer/harness"
	"github.com/ohsu-comp-bio/balancer/util/fsutil"
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(policyTotal)
	prometheus.MustRegister(policyAverage)
	prometheus.MustRegister(policyMakespan)
	prometheus.MustRegister(policyRuns)
	prometheus.MustRegister(workloadTasks)
	prometheus.MustRegister(workloadResources)
}

var policyTotal = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "balancer",
		Subsystem: "policy",
		Name:      "total_completion_time",
		Help:      "Total completion time of the last run of each policy, in ticks.",
	},
	[]string{"policy"},
)

var policyAverage = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "balancer",
		Subsystem: "policy",
		Name:      "average_completion_time",
		Help:      "Average task completion time of the last run of each policy, in ticks.",
	},
	[]string{"policy"},
)

var policyMakespan = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "balancer",
		Subsystem: "policy",
		Name:      "makespan",
		Help:      "Makespan of the last run of each policy, in ticks.",
	},
	[]string{"policy"},
)

var policyRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "balancer",
		Subsystem: "policy",
		Name:      "runs_total",
		Help:      "Number of completed runs of each policy.",
	},
	[]string{"policy"},
)

var workloadTasks = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Subsystem: "workload",
	Name:      "tasks",
	Help:      "Number of tasks in the last workload.",
})

var workloadResources = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "balancer",
	Subsystem: "workload",
	Name:      "resources",
	Help:      "Number of resources in the last workload.",
})

// Record updates the gauges of a policy with the metrics of its latest run.
// It can be used as a harness.Observer.
func Record(m harness.Metrics) {
	policyTotal.WithLabelValues(m.Policy).Set(m.TotalCompletionTime)
	policyAverage.WithLabelValues(m.Policy).Set(m.AverageCompletionTime)
	policyMakespan.WithLabelValues(m.Policy).Set(m.Makespan)
	policyRuns.WithLabelValues(m.Policy).Inc()
}

// RecordWorkload updates the workload size gauges.
func RecordWorkload(tasks, resources int) {
	workloadTasks.Set(float64(tasks))
	workloadResources.Set(float64(resources))
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for collection by the node exporter.
func WriteTextfile(path string) error {
	if err := fsutil.EnsurePath(path); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
