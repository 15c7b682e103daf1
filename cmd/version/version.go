package version

import (
	"fmt"

	"github.com/ohsu-comp-bio/balancer/logger"
	"github.com/ohsu-comp-bio/balancer/version"
	"github.com/spf13/cobra"
)

// Cmd represents the "version" command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print build and version details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
	},
}

// Log logs build and version information to the given logger.
func Log(l *logger.Logger) {
	l.Debug("Version", version.Get().LogFields()...)
}
