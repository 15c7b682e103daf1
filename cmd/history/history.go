package history

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/ohsu-comp-bio/balancer/config"
	"github.com/ohsu-comp-bio/balancer/harness"
	"github.com/ohsu-comp-bio/balancer/store"
	"github.com/spf13/cobra"
)

// NewCommand returns the "history" subcommands.
func NewCommand() *cobra.Command {
	cmd, _ := newCommandHooks()
	return cmd
}

type hooks struct {
	List   func(conf config.BoltDB, limit int, w io.Writer) error
	Get    func(conf config.BoltDB, ids []string, view string, w io.Writer) error
	Delete func(conf config.BoltDB, ids []string, w io.Writer) error
}

func newCommandHooks() (*cobra.Command, *hooks) {
	h := &hooks{
		List:   List,
		Get:    Get,
		Delete: Delete,
	}

	conf := config.DefaultConfig().BoltDB

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"reports"},
		Short:   "Browse stored comparison reports.",
	}
	cmd.PersistentFlags().StringVar(&conf.Path, "db-path", conf.Path, "Path of the report database")

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List reports, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.List(conf, limit, cmd.OutOrStdout())
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of reports. Zero lists all")

	var view string
	get := &cobra.Command{
		Use:   "get [reportID ...]",
		Short: "Get one or more reports by ID.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.Get(conf, args, view, cmd.OutOrStdout())
		},
	}
	get.Flags().StringVarP(&view, "view", "v", "full", "Report view. One of ['summary', 'full']")

	del := &cobra.Command{
		Use:   "delete [reportID ...]",
		Short: "Delete one or more reports by ID.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.Delete(conf, args, cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(list, get, del)
	return cmd, h
}

// List prints a ranked table for each of the newest reports.
func List(conf config.BoltDB, limit int, w io.Writer) error {
	db, err := open(conf)
	if err != nil {
		return err
	}
	defer db.Close()

	reports, err := db.ListReports(limit, store.Summary)
	if err != nil {
		return err
	}
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %s  seed=%d\n", r.ID, r.CreatedAt.Format(time.RFC3339), r.Seed)
		if err := harness.WriteTable(w, harness.Rank(r.Metrics)); err != nil {
			return err
		}
	}
	return nil
}

// Get prints the reports with the given IDs as YAML documents.
func Get(conf config.BoltDB, ids []string, view string, w io.Writer) error {
	v, err := parseView(view)
	if err != nil {
		return err
	}
	db, err := open(conf)
	if err != nil {
		return err
	}
	defer db.Close()

	for i, id := range ids {
		r, err := db.GetReport(id, v)
		if err != nil {
			return fmt.Errorf("report %s: %w", id, err)
		}
		b, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w, "---")
		}
		fmt.Fprint(w, string(b))
	}
	return nil
}

// Delete removes the reports with the given IDs.
func Delete(conf config.BoltDB, ids []string, w io.Writer) error {
	db, err := open(conf)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, id := range ids {
		if err := db.DeleteReport(id); err != nil {
			return fmt.Errorf("report %s: %w", id, err)
		}
		fmt.Fprintln(w, "deleted", id)
	}
	return nil
}

func open(conf config.BoltDB) (*store.BoltDB, error) {
	db, err := store.Open(conf)
	if err != nil {
		return nil, err
	}
	if err := db.Init(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func parseView(view string) (store.View, error) {
	switch strings.ToLower(view) {
	case "summary":
		return store.Summary, nil
	case "", "full":
		return store.Full, nil
	}
	return store.Full, fmt.Errorf("unknown report view: %s. Valid views: ['summary', 'full']", view)
}
