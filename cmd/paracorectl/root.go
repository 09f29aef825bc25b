package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nsavage/paracore/cmd/paracorectl/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "paracorectl",
	Short: "Exercise the paracore allocator and worker pool from the command line",
	Long: `paracorectl drives pkg/allocator's global facade and internal/pool for
quick manual exercise and scripting.

Each invocation is a fresh process: alloc, free, stats, verify, and dump
operate on a global facade that exists only for the lifetime of that one
command, so an address printed by one "paracorectl alloc" call is not
valid input to a later "paracorectl free" call in a different process.
"paracorectl pool bench" is self-contained and does not have this
limitation, since it allocates, submits, and waits within a single run.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Enabled: verbose})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
