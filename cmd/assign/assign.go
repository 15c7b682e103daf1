package assign

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ghodss/yaml"
	"github.com/ohsu-comp-bio/balancer/cmd/util"
	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/logger"
	"github.com/ohsu-comp-bio/balancer/model"
	"github.com/ohsu-comp-bio/balancer/policy"
	"github.com/spf13/cobra"
)

var log = logger.NewSubLogger("assign")

// NewCommand returns the "assign" command.
func NewCommand() *cobra.Command {
	cmd, _ := newCommandHooks()
	return cmd
}

type hooks struct {
	Assign func(ctx context.Context, name string, conf config.Config, asJSON bool, w io.Writer) error
}

func newCommandHooks() (*cobra.Command, *hooks) {
	h := &hooks{
		Assign: Assign,
	}

	var (
		configFile string
		asJSON     bool
	)
	flagConf := config.Config{}

	cmd := &cobra.Command{
		Use:   "assign [policy]",
		Short: "Print the assignment plan of one policy.",
		Long: `Runs a single policy over the workload and prints its plan,
one binding per task in submission order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := util.MergeConfigFileWithFlags(configFile, flagConf, cmd.Flags())
			if err != nil {
				return err
			}
			return h.Assign(context.Background(), args[0], conf, asJSON, cmd.OutOrStdout())
		},
	}
	cmd.SetGlobalNormalizationFunc(util.NormalizeFlags)

	f := cmd.Flags()
	f.StringVarP(&configFile, "config", "c", configFile, "Config File")
	f.BoolVar(&asJSON, "json", asJSON, "Print the plan as JSON instead of YAML")
	f.AddFlagSet(util.PolicyFlags(&flagConf))
	f.AddFlagSet(util.WorkloadFlags(&flagConf))
	f.AddFlagSet(util.LoggerFlags(&flagConf))

	return cmd, h
}

// Assign runs the named policy over the configured workload and writes
// the resulting plan to w.
func Assign(ctx context.Context, name string, conf config.Config, asJSON bool, w io.Writer) error {
	logger.Configure(conf.Logger)

	seed, ok := conf.Policy.Seed()
	if !ok {
		seed = time.Now().UnixNano()
		conf.Policy = conf.Policy.WithSeed(seed)
	}

	p, err := policy.New(name)
	if err != nil {
		return err
	}
	wl, err := util.LoadWorkload(conf.Workload, seed)
	if err != nil {
		return err
	}
	if err := p.Initialize(wl.Tasks, wl.Resources, conf.Policy); err != nil {
		return err
	}
	plan, err := p.Assign(ctx)
	if err != nil {
		return err
	}
	log.Debug("Assigned", "policy", name, "tasks", plan.Len(), "seed", plan.Seed)

	b, err := marshalPlan(plan, asJSON)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func marshalPlan(plan *model.Plan, asJSON bool) ([]byte, error) {
	if asJSON {
		return json.MarshalIndent(plan, "", "  ")
	}
	return yaml.Marshal(plan)
}
