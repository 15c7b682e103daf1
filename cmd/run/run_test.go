package run

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/harness"
	"github.com/ohsu-comp-bio/balancer/logger"
	"github.com/ohsu-comp-bio/balancer/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	conf := config.DefaultConfig()
	conf.Logger = logger.DebugConfig()
	conf.Logger.OutputFile = filepath.Join(t.TempDir(), "balancer.log")
	conf.Policy = conf.Policy.WithSeed(42)
	conf.Workload.Tasks = 10
	conf.Workload.Resources = 3
	conf.BoltDB.Path = filepath.Join(t.TempDir(), "balancer.db")
	return conf
}

func TestRun(t *testing.T) {
	conf := testConfig(t)
	conf.Output.CSVPath = filepath.Join(t.TempDir(), "results.csv")
	conf.Metrics.TextfilePath = filepath.Join(t.TempDir(), "balancer.prom")

	b := &bytes.Buffer{}
	report, err := Run(context.Background(), conf, b)
	require.NoError(t, err)

	require.Len(t, report.Metrics, len(config.DefaultPolicies()))
	assert.Equal(t, int64(42), report.Seed)
	assert.True(t, strings.HasPrefix(b.String(), "RANK"))
	for _, name := range config.DefaultPolicies() {
		assert.Contains(t, b.String(), name)
	}

	csv, err := os.ReadFile(conf.Output.CSVPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csv), "policy,"))

	prom, err := os.ReadFile(conf.Metrics.TextfilePath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "balancer_policy_total_completion_time")

	db, err := store.Open(conf.BoltDB)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.GetReport(report.ID, store.Full)
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 10)
}

func TestRunDeterministic(t *testing.T) {
	conf := testConfig(t)
	conf.BoltDB.Path = ""

	a, err := Run(context.Background(), conf, io.Discard)
	require.NoError(t, err)
	b, err := Run(context.Background(), conf, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, a.Metrics, b.Metrics)
}

func TestRunCSVOutput(t *testing.T) {
	conf := testConfig(t)
	conf.Output.Format = "csv"
	conf.Policies = []string{config.RoundRobin}

	b := &bytes.Buffer{}
	_, err := Run(context.Background(), conf, b)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(b.String(), "policy,total_completion_time"))
}

func TestRunErrors(t *testing.T) {
	conf := testConfig(t)
	conf.Output.Format = "xml"
	_, err := Run(context.Background(), conf, io.Discard)
	assert.Error(t, err)

	conf = testConfig(t)
	conf.Policies = []string{"random"}
	_, err = Run(context.Background(), conf, io.Discard)
	assert.Error(t, err)

	conf = testConfig(t)
	conf.Workload.File = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = Run(context.Background(), conf, io.Discard)
	assert.Error(t, err)
}

func TestRunFlags(t *testing.T) {
	cmd, h := newCommandHooks()

	h.Run = func(ctx context.Context, conf config.Config, w io.Writer) (*harness.Report, error) {
		assert.Equal(t, []string{"genetic"}, conf.Policies)
		assert.Equal(t, 7, conf.Policy.GenerationCount)
		assert.Equal(t, 12, conf.Workload.Tasks)
		assert.Equal(t, "csv", conf.Output.Format)
		seed, ok := conf.Policy.Seed()
		assert.True(t, ok)
		assert.Equal(t, int64(3), seed)
		return &harness.Report{}, nil
	}

	cmd.SetArgs([]string{
		"--policies", "genetic",
		"--policy-generationcount", "7",
		"--Workload.Tasks", "12",
		"-o", "csv",
		"--policy-randomseed", "3",
	})
	require.NoError(t, cmd.Execute())
}
