package util

import (
	"fmt"
	"io"

	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/workload"
)

// LoadWorkload returns the configured workload. A workload file of "-"
// is read from stdin.
func LoadWorkload(conf config.Workload, seed int64) (*workload.Workload, error) {
	if conf.File != "-" {
		return workload.FromConfig(conf, seed)
	}
	raw, err := io.ReadAll(StdinPipe())
	if err != nil {
		return nil, fmt.Errorf("reading workload from stdin: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no workload on stdin")
	}
	return workload.Parse(raw)
}
