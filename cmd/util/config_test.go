package util

import (
	"testing"
	"time"

	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeConfigFileWithFlags(t *testing.T) {
	flagConf := config.Config{}
	f := RunFlags(&flagConf, new(string))
	require.NoError(t, f.Parse([]string{
		"--Policy.GenerationCount", "5",
		"--Policy.RandomSeed", "42",
		"-p", "genetic,round-robin",
	}))

	result, err := MergeConfigFileWithFlags("", flagConf, f)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Policy.GenerationCount)
	assert.Equal(t, []string{"genetic", "round-robin"}, result.Policies)
	seed, ok := result.Policy.Seed()
	assert.True(t, ok)
	assert.Equal(t, int64(42), seed)
	// Unset flags keep the defaults.
	assert.Equal(t, 0.5, result.Policy.CrossoverProbability)

	fileConf := config.DefaultConfig()
	fileConf.Policy.GenerationCount = 50
	fileConf.Policy.AgingFactor = 3
	fileConf.Workload.Tasks = 7
	tmp, cleanup := config.ToYamlTempFile(fileConf, "testconfig.yaml")
	defer cleanup()

	result, err = MergeConfigFileWithFlags(tmp, flagConf, f)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Policy.GenerationCount)
	assert.Equal(t, 3.0, result.Policy.AgingFactor)
	assert.Equal(t, 7, result.Workload.Tasks)
}

func TestMergeConfigExplicitZeroFlags(t *testing.T) {
	fileConf := config.DefaultConfig()
	fileConf.Policy.GenerationCount = 50
	fileConf.Policy.DiscardMutation = true
	fileConf.Workload.Tasks = 7
	tmp, cleanup := config.ToYamlTempFile(fileConf, "testconfig.yaml")
	defer cleanup()

	flagConf := config.Config{}
	f := RunFlags(&flagConf, new(string))
	require.NoError(t, f.Parse([]string{
		"--Policy.GenerationCount", "0",
		"--Policy.MutationProbability", "0",
		"--Policy.CrossoverProbability", "0",
		"--Policy.AgingFactor", "0",
		"--Policy.DiscardMutation=false",
		"--Workload.Tasks", "0",
	}))

	result, err := MergeConfigFileWithFlags(tmp, flagConf, f)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Policy.GenerationCount)
	assert.Equal(t, 0.0, result.Policy.MutationProbability)
	assert.Equal(t, 0.0, result.Policy.CrossoverProbability)
	assert.Equal(t, 0.0, result.Policy.AgingFactor)
	assert.False(t, result.Policy.DiscardMutation)
	assert.Equal(t, 0, result.Workload.Tasks)
	// Flags which were not given keep the file and default values.
	assert.Equal(t, fileConf.Workload.Resources, result.Workload.Resources)
	assert.Nil(t, result.Policy.RandomSeed)
}

func TestMergeConfigChangedSliceFlag(t *testing.T) {
	flagConf := config.Config{}
	f := RunFlags(&flagConf, new(string))
	f.SetNormalizeFunc(NormalizeFlags)
	require.NoError(t, f.Parse([]string{
		"-p", config.FirstComeFirst,
		"--policies", config.ShortestJobFirst,
		"--policy-timeout", "3s",
	}))

	result, err := MergeConfigFileWithFlags("", flagConf, f)
	require.NoError(t, err)
	assert.Equal(t, []string{config.FirstComeFirst, config.ShortestJobFirst}, result.Policies)
	assert.Equal(t, config.Duration(3*time.Second), result.Policy.Timeout)
}

func TestMergeConfigFileMissing(t *testing.T) {
	_, err := MergeConfigFileWithFlags("does-not-exist.yaml", config.Config{}, nil)
	assert.Error(t, err)
}

func TestSeedFlagUnset(t *testing.T) {
	flagConf := config.Config{}
	f := RunFlags(&flagConf, new(string))
	require.NoError(t, f.Parse(nil))
	assert.Nil(t, flagConf.Policy.RandomSeed)
}

func TestNormalizeFlags(t *testing.T) {
	flagConf := config.Config{}
	f := RunFlags(&flagConf, new(string))
	f.SetNormalizeFunc(NormalizeFlags)
	require.NoError(t, f.Parse([]string{"--policy-generationcount", "3"}))
	assert.Equal(t, 3, flagConf.Policy.GenerationCount)
}
