package main

import (
	"os"

	"github.com/spf13/cobra"

	"ridge/internal/ir"
	"ridge/internal/irenc"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.rir>",
	Short: "Print a human-readable dump of an IR module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := irenc.ReadFile(args[0])
		if err != nil {
			return err
		}
		return ir.DumpModule(os.Stdout, root)
	},
}
