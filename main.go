package main

import (
	"os"

	"github.com/ohsu-comp-bio/balancer/cmd"
	"github.com/ohsu-comp-bio/balancer/logger"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		logger.PrintSimpleError(err)
		os.Exit(1)
	}
}
