package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsavage/paracore/pkg/allocator"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the global facade's allocated/free/peak byte counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			allocated, free, peak, err := allocator.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("allocated: %d\nfree: %d\npeak: %d\n", allocated, free, peak)
			return nil
		},
	}
}
