package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nsavage/paracore/cmd/paracorectl/logger"
	"github.com/nsavage/paracore/pkg/allocator"
)

func init() {
	rootCmd.AddCommand(newFreeCmd())
}

func newFreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "free <addr>",
		Short: "Free the allocation starting at addr (hex, e.g. 0x1000) on the global facade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := strconv.ParseUint(args[0], 0, 64)
			if err != nil {
				return fmt.Errorf("invalid address %q: %w", args[0], err)
			}

			if err := allocator.Free(uintptr(addr)); err != nil {
				return fmt.Errorf("free failed: %w", err)
			}
			logger.Info("freed", "addr", fmt.Sprintf("0x%x", addr))
			return nil
		},
	}
}
