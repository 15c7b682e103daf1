package generate

import (
	"fmt"
	"io"
	"time"

	"github.com/ohsu-comp-bio/balancer/cmd/util"
	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/logger"
	"github.com/ohsu-comp-bio/balancer/workload"
	"github.com/spf13/cobra"
)

var log = logger.NewSubLogger("generate")

// Cmd represents the "generate" command
var Cmd = &cobra.Command{
	Use:   "generate [flags]",
	Short: "Generate a synthetic workload file.",
	Long: `Generates tasks of increasing length and resources of increasing rate.
The workload is written to --out, or printed to stdout as YAML.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := util.MergeConfigFileWithFlags(configFile, flagConf, cmd.Flags())
		if err != nil {
			return err
		}
		return Generate(conf, out, asJSON, cmd.OutOrStdout())
	},
}

var (
	configFile string
	out        string
	asJSON     bool
	flagConf   = config.Config{}
)

func init() {
	Cmd.SetGlobalNormalizationFunc(util.NormalizeFlags)

	f := Cmd.Flags()
	f.StringVarP(&configFile, "config", "c", configFile, "Config File")
	f.StringVarP(&out, "out", "f", out, "Output file. Files ending in .json are written as JSON")
	f.BoolVar(&asJSON, "json", asJSON, "Print JSON instead of YAML to stdout")
	f.Var(&util.SeedValue{P: &flagConf.Policy.RandomSeed}, "Policy.RandomSeed", "Random seed for priority levels")
	f.AddFlagSet(util.WorkloadFlags(&flagConf))
}

// Generate builds a workload from the configuration and writes it to the
// out file, or to w when out is empty.
func Generate(conf config.Config, out string, asJSON bool, w io.Writer) error {
	seed, ok := conf.Policy.Seed()
	if !ok {
		seed = time.Now().UnixNano()
	}

	// Generating ignores any configured workload file.
	conf.Workload.File = ""
	wl, err := workload.FromConfig(conf.Workload, seed)
	if err != nil {
		return err
	}

	if out != "" {
		if err := workload.Save(out, wl); err != nil {
			return err
		}
		log.Info("Wrote workload", "path", out, "tasks", len(wl.Tasks), "resources", len(wl.Resources))
		return nil
	}

	b, err := wl.Marshal(asJSON)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
