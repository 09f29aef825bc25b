package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nsavage/paracore/cmd/paracorectl/logger"
	"github.com/nsavage/paracore/pkg/allocator"
)

func init() {
	rootCmd.AddCommand(newAllocCmd())
}

func newAllocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alloc <size>",
		Short: "Allocate size bytes from the global facade and print the resulting address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid size %q: %w", args[0], err)
			}

			addr := allocator.Alloc(uintptr(size))
			if addr == 0 {
				return fmt.Errorf("allocation of %d bytes failed", size)
			}
			logger.Info("allocated", "size", size, "addr", fmt.Sprintf("0x%x", addr))
			fmt.Printf("0x%x\n", addr)
			return nil
		},
	}
}
