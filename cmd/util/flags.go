package util

import (
	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/spf13/pflag"
)

// RunFlags returns a new flag set for configuring a comparison run.
func RunFlags(flagConf *config.Config, configFile *string) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVarP(configFile, "config", "c", *configFile, "Config File")
	f.AddFlagSet(ConfigFlags(flagConf))

	return f
}

// ConfigFlags returns a new flag set with a flag for every configurable field.
func ConfigFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.AddFlagSet(selectorFlags(flagConf))
	f.AddFlagSet(PolicyFlags(flagConf))
	f.AddFlagSet(WorkloadFlags(flagConf))
	f.AddFlagSet(dbFlags(flagConf))
	f.AddFlagSet(outputFlags(flagConf))
	f.AddFlagSet(LoggerFlags(flagConf))

	return f
}

func selectorFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringSliceVarP(&flagConf.Policies, "Policies", "p", flagConf.Policies,
		"Names of the policies to compare. This flag can be used multiple times")

	return f
}

// PolicyFlags returns flags for tuning the policies.
func PolicyFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.IntVar(&flagConf.Policy.GenerationCount, "Policy.GenerationCount", flagConf.Policy.GenerationCount, "Number of genetic search generations")
	f.Float64Var(&flagConf.Policy.CrossoverProbability, "Policy.CrossoverProbability", flagConf.Policy.CrossoverProbability, "Crossover probability, in [0,1]")
	f.Float64Var(&flagConf.Policy.MutationProbability, "Policy.MutationProbability", flagConf.Policy.MutationProbability, "Mutation probability, in [0,1]")
	f.BoolVar(&flagConf.Policy.DiscardMutation, "Policy.DiscardMutation", flagConf.Policy.DiscardMutation, "Discard mutated chromosomes instead of keeping them")
	f.IntVar(&flagConf.Policy.Workers, "Policy.Workers", flagConf.Policy.Workers, "Number of workers evaluating fitness in parallel")
	f.Var(&flagConf.Policy.Timeout, "Policy.Timeout", "Wall-clock cap on the genetic search")
	f.Float64Var(&flagConf.Policy.AgingFactor, "Policy.AgingFactor", flagConf.Policy.AgingFactor, "Aging factor of the aging priority policy")
	f.Var(&SeedValue{&flagConf.Policy.RandomSeed}, "Policy.RandomSeed", "Random seed. Generated and reported when unset")

	return f
}

// WorkloadFlags returns flags for choosing or generating a workload.
func WorkloadFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVarP(&flagConf.Workload.File, "Workload.File", "w", flagConf.Workload.File, "Workload file (YAML or JSON), or - for stdin. Generated when unset")
	f.IntVar(&flagConf.Workload.Tasks, "Workload.Tasks", flagConf.Workload.Tasks, "Number of generated tasks")
	f.IntVar(&flagConf.Workload.Resources, "Workload.Resources", flagConf.Workload.Resources, "Number of generated resources")
	f.Float64Var(&flagConf.Workload.BaseLength, "Workload.BaseLength", flagConf.Workload.BaseLength, "Length of the first generated task")
	f.Float64Var(&flagConf.Workload.LengthStep, "Workload.LengthStep", flagConf.Workload.LengthStep, "Length increase between generated tasks")
	f.Float64Var(&flagConf.Workload.BaseRate, "Workload.BaseRate", flagConf.Workload.BaseRate, "Rate of the first generated resource")
	f.Float64Var(&flagConf.Workload.RateStep, "Workload.RateStep", flagConf.Workload.RateStep, "Rate increase between generated resources")
	f.IntVar(&flagConf.Workload.Cores, "Workload.Cores", flagConf.Workload.Cores, "Cores of each generated resource")
	f.BoolVar(&flagConf.Workload.RandomPriority, "Workload.RandomPriority", flagConf.Workload.RandomPriority, "Assign random priority levels to generated tasks")

	return f
}

func dbFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVar(&flagConf.BoltDB.Path, "BoltDB.Path", flagConf.BoltDB.Path, "Path of the report database")
	f.StringVar(&flagConf.Metrics.TextfilePath, "Metrics.TextfilePath", flagConf.Metrics.TextfilePath, "Path of a Prometheus textfile to write")

	return f
}

func outputFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVarP(&flagConf.Output.Format, "Output.Format", "o", flagConf.Output.Format, "Output format: table or csv")
	f.StringVar(&flagConf.Output.CSVPath, "Output.CSVPath", flagConf.Output.CSVPath, "Also write results as CSV to this file")

	return f
}

// LoggerFlags returns flags for configuring the logger.
func LoggerFlags(flagConf *config.Config) *pflag.FlagSet {
	f := pflag.NewFlagSet("", pflag.ContinueOnError)

	f.StringVar(&flagConf.Logger.Level, "Logger.Level", flagConf.Logger.Level, "Level of logging")
	f.StringVar(&flagConf.Logger.OutputFile, "Logger.OutputFile", flagConf.Logger.OutputFile, "File path to write logs to")
	f.StringVar(&flagConf.Logger.Formatter, "Logger.Formatter", flagConf.Logger.Formatter, "Logs formatter. One of ['text', 'json']")

	return f
}
