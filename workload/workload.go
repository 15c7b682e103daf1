// Package workload builds the task and resource pools a comparison runs
// over, either generated synthetically or read from a file.
package workload

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/model"
	"github.com/ohsu-comp-bio/balancer/util/fsutil"
)

// Workload is a task pool and the resource pool it runs on.
type Workload struct {
	Tasks     []model.Task
	Resources []model.Resource
}

// Validate checks both pools.
func (w *Workload) Validate() error {
	return model.Validate(w.Tasks, w.Resources)
}

// Generate builds a synthetic workload. Resource i runs at
// BaseRate + i*RateStep, task i has length BaseLength + i*LengthStep and
// is submitted at tick i. When RandomPriority is set, each task draws a
// priority level in [1,10] from the seeded source.
func Generate(conf config.Workload, seed int64) (*Workload, error) {
	switch {
	case conf.Tasks < 0:
		return nil, model.Configf("task count must not be negative, got %d", conf.Tasks)
	case conf.Resources <= 0:
		return nil, model.Configf("resource count must be positive, got %d", conf.Resources)
	case conf.Cores <= 0:
		return nil, model.Configf("core count must be positive, got %d", conf.Cores)
	}

	r := rand.New(rand.NewSource(seed))
	w := &Workload{
		Tasks:     make([]model.Task, 0, conf.Tasks),
		Resources: make([]model.Resource, 0, conf.Resources),
	}

	for i := 0; i < conf.Resources; i++ {
		w.Resources = append(w.Resources, model.Resource{
			ID:    i,
			Rate:  conf.BaseRate + float64(i)*conf.RateStep,
			Cores: conf.Cores,
		})
	}
	for i := 0; i < conf.Tasks; i++ {
		t := model.Task{
			ID:          i,
			Length:      conf.BaseLength + float64(i)*conf.LengthStep,
			SubmittedAt: int64(i),
		}
		if conf.RandomPriority {
			t.PriorityLevel = r.Intn(model.MaxPriorityLevel) + model.MinPriorityLevel
		}
		w.Tasks = append(w.Tasks, t)
	}

	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("generating workload: %w", err)
	}
	return w, nil
}

// FromConfig loads the configured workload file, or generates a workload
// when no file is set.
func FromConfig(conf config.Workload, seed int64) (*Workload, error) {
	if conf.File != "" {
		return Load(conf.File)
	}
	return Generate(conf, seed)
}

// Parse parses a YAML or JSON workload document and validates it.
func Parse(raw []byte) (*Workload, error) {
	w := &Workload{}
	if err := yaml.Unmarshal(raw, w); err != nil {
		return nil, fmt.Errorf("parsing workload: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Load reads a YAML or JSON workload file.
func Load(path string) (*Workload, error) {
	if path == "" {
		return nil, fmt.Errorf("workload path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload file: %w", err)
	}
	w, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Marshal encodes the workload as YAML, or as JSON when asJSON is set.
func (w *Workload) Marshal(asJSON bool) ([]byte, error) {
	if asJSON {
		return json.MarshalIndent(w, "", "  ")
	}
	return yaml.Marshal(w)
}

// Save writes the workload to a file. Files ending in ".json" are
// written as JSON, anything else as YAML.
func Save(path string, w *Workload) error {
	ext := strings.ToLower(filepath.Ext(path))
	b, err := w.Marshal(ext == ".json")
	if err != nil {
		return fmt.Errorf("encoding workload: %w", err)
	}
	if err := fsutil.EnsurePath(path); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
