// Package main implements the ridge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ridge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ridge",
	Short: "Ridge IR-to-C++ translator",
	Long:  "Ridge translates serialized IR modules into C++ source code.",
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.PersistentPreRunE = applyColorMode

	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyColorMode(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stderr)
	default:
		return fmt.Errorf("invalid --color value %q (auto|on|off)", mode)
	}
	return nil
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
