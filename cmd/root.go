// Package cmd contains the balancer CLI commands.
package cmd

import (
	"github.com/ohsu-comp-bio/balancer/cmd/assign"
	"github.com/ohsu-comp-bio/balancer/cmd/generate"
	"github.com/ohsu-comp-bio/balancer/cmd/history"
	"github.com/ohsu-comp-bio/balancer/cmd/run"
	"github.com/ohsu-comp-bio/balancer/cmd/version"
	"github.com/spf13/cobra"
)

// RootCmd represents the root command
var RootCmd = &cobra.Command{
	Use:           "balancer",
	Short:         "Compare task scheduling policies.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	RootCmd.AddCommand(assign.NewCommand())
	RootCmd.AddCommand(completionCmd)
	RootCmd.AddCommand(generate.Cmd)
	RootCmd.AddCommand(genMarkdownCmd)
	RootCmd.AddCommand(history.NewCommand())
	RootCmd.AddCommand(run.NewCommand())
	RootCmd.AddCommand(version.Cmd)
}
