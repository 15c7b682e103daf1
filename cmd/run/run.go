package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/ohsu-comp-bio/balancer/cmd/util"
	"github.com/ohsu-comp-bio/balancer/cmd/version"
	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/harness"
	"github.com/ohsu-comp-bio/balancer/logger"
	"github.com/ohsu-comp-bio/balancer/metrics"
	"github.com/ohsu-comp-bio/balancer/policy"
	"github.com/ohsu-comp-bio/balancer/sim"
	"github.com/ohsu-comp-bio/balancer/store"
	butil "github.com/ohsu-comp-bio/balancer/util"
	"github.com/ohsu-comp-bio/balancer/util/fsutil"
	"github.com/spf13/cobra"
)

var log = logger.NewSubLogger("run")

// NewCommand returns the "run" command.
func NewCommand() *cobra.Command {
	cmd, _ := newCommandHooks()
	return cmd
}

type hooks struct {
	Run func(ctx context.Context, conf config.Config, w io.Writer) (*harness.Report, error)
}

func newCommandHooks() (*cobra.Command, *hooks) {
	h := &hooks{
		Run: Run,
	}

	var configFile string
	flagConf := config.Config{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compare scheduling policies over one workload.",
		Long: `Runs every configured policy over the same tasks and resources,
executes each plan on a space-shared simulator and prints the ranked
completion times.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := util.MergeConfigFileWithFlags(configFile, flagConf, cmd.Flags())
			if err != nil {
				return err
			}
			ctx := butil.SignalContext(context.Background(), time.Millisecond, syscall.SIGINT, syscall.SIGTERM)
			_, err = h.Run(ctx, conf, cmd.OutOrStdout())
			return err
		},
	}
	cmd.SetGlobalNormalizationFunc(util.NormalizeFlags)
	cmd.Flags().AddFlagSet(util.RunFlags(&flagConf, &configFile))

	return cmd, h
}

// Run runs a comparison, writes the ranked results to w and, when
// configured, stores the report and writes the metrics textfile.
func Run(ctx context.Context, conf config.Config, w io.Writer) (*harness.Report, error) {
	logger.Configure(conf.Logger)
	version.Log(log)

	write, err := writer(conf.Output.Format)
	if err != nil {
		return nil, err
	}

	// One seed drives the workload generator and every policy.
	seed, ok := conf.Policy.Seed()
	if !ok {
		seed = time.Now().UnixNano()
		conf.Policy = conf.Policy.WithSeed(seed)
	}

	wl, err := util.LoadWorkload(conf.Workload, seed)
	if err != nil {
		return nil, err
	}
	metrics.RecordWorkload(len(wl.Tasks), len(wl.Resources))

	policies, err := policy.NewAll(conf.Policies)
	if err != nil {
		return nil, err
	}

	h := harness.New(
		sim.NewExecutor(logger.NewSubLogger("sim")),
		conf.Policy,
		logger.NewSubLogger("harness"),
		metrics.Record,
	)
	report, err := h.Run(ctx, policies, wl.Tasks, wl.Resources)
	if err != nil {
		return nil, err
	}

	ranked := harness.Rank(report.Metrics)
	if err := write(w, ranked); err != nil {
		return nil, err
	}

	if conf.Output.CSVPath != "" {
		if err := writeCSVFile(conf.Output.CSVPath, ranked); err != nil {
			return nil, err
		}
		log.Info("Wrote CSV results", "path", conf.Output.CSVPath)
	}

	if conf.BoltDB.Path != "" {
		if err := saveReport(conf.BoltDB, report); err != nil {
			return nil, err
		}
		log.Info("Saved report", "id", report.ID, "path", conf.BoltDB.Path)
	}

	if conf.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(conf.Metrics.TextfilePath); err != nil {
			return nil, fmt.Errorf("writing metrics textfile: %w", err)
		}
	}
	return report, nil
}

func writer(format string) (func(io.Writer, []harness.Metrics) error, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return harness.WriteTable, nil
	case "csv":
		return harness.WriteCSV, nil
	}
	return nil, fmt.Errorf("unknown output format %q, expected one of ['table', 'csv']", format)
}

func writeCSVFile(path string, m []harness.Metrics) error {
	if err := fsutil.EnsurePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return harness.WriteCSV(f, m)
}

func saveReport(conf config.BoltDB, r *harness.Report) error {
	db, err := store.Open(conf)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Init(); err != nil {
		return err
	}
	return db.PutReport(r)
}
