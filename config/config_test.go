package config

import (
	"testing"
	"time"
)

func TestPolicyConfigParsing(t *testing.T) {
	yaml := `
Policies:
  - round-robin
  - genetic
Policy:
  GenerationCount: 5
  CrossoverProbability: 0.25
  DiscardMutation: true
  Timeout: 2s
  RandomSeed: 42
`
	conf := DefaultConfig()
	err := Parse([]byte(yaml), &conf)
	if err != nil {
		t.Fatal(err)
	}

	if len(conf.Policies) != 2 || conf.Policies[1] != Genetic {
		t.Fatal("unexpected policies", conf.Policies)
	}
	if conf.Policy.GenerationCount != 5 {
		t.Fatal("unexpected generation count")
	}
	if conf.Policy.CrossoverProbability != 0.25 {
		t.Fatal("unexpected crossover probability")
	}
	// Untouched keys keep their default.
	if conf.Policy.MutationProbability != 0.5 {
		t.Fatal("unexpected mutation probability")
	}
	if !conf.Policy.DiscardMutation {
		t.Fatal("expected DiscardMutation")
	}
	if time.Duration(conf.Policy.Timeout) != 2*time.Second {
		t.Fatal("unexpected timeout", conf.Policy.Timeout.String())
	}
	seed, ok := conf.Policy.Seed()
	if !ok || seed != 42 {
		t.Fatal("unexpected seed")
	}
}

func TestWorkloadConfigParsing(t *testing.T) {
	yaml := `
Workload:
  Tasks: 4
  Resources: 2
  Cores: 2
`
	conf := DefaultConfig()
	if err := Parse([]byte(yaml), &conf); err != nil {
		t.Fatal(err)
	}
	if conf.Workload.Tasks != 4 || conf.Workload.Resources != 2 || conf.Workload.Cores != 2 {
		t.Fatal("unexpected workload", conf.Workload)
	}
	if conf.Workload.BaseLength != 1000 {
		t.Fatal("expected default base length to be kept")
	}
}

func TestYamlRoundTrip(t *testing.T) {
	c := DefaultConfig()
	c.Policy = c.Policy.WithSeed(7)
	c.Policy.Timeout = Duration(time.Minute)

	p, cleanup := ToYamlTempFile(c, "config.yaml")
	defer cleanup()

	parsed := Config{}
	if err := ParseFile(p, &parsed); err != nil {
		t.Fatal(err)
	}
	if seed, _ := parsed.Policy.Seed(); seed != 7 {
		t.Fatal("unexpected seed", seed)
	}
	if time.Duration(parsed.Policy.Timeout) != time.Minute {
		t.Fatal("unexpected timeout")
	}
	if parsed.Workload.Tasks != c.Workload.Tasks {
		t.Fatal("unexpected workload tasks")
	}
}

func TestParseFileEmptyPath(t *testing.T) {
	conf := DefaultConfig()
	if err := ParseFile("", &conf); err != nil {
		t.Fatal(err)
	}
}
