package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsavage/paracore/pkg/allocator"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the global facade's heap invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := allocator.Verify(); err != nil {
				return fmt.Errorf("invariant violation: %w", err)
			}
			fmt.Println("ok")
			return nil
		},
	}
}
