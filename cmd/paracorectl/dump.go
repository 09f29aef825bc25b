package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nsavage/paracore/pkg/allocator"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print a diagnostic listing of the global facade's heap and vm state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			allocator.Dump(os.Stdout)
			return nil
		},
	}
}
