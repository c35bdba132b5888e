package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ridge/internal/backend/cpp"
	"ridge/internal/driver"
	"ridge/internal/irenc"
	"ridge/internal/project"
)

var translateCmd = &cobra.Command{
	Use:   "translate [flags] <file.rir>...",
	Short: "Translate IR modules to C++",
	Long:  "Translate one or more serialized IR modules into C++ source files.\nDefaults come from the nearest ridge.toml when one exists.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  translateExecution,
}

func init() {
	translateCmd.Flags().Bool("declare-variables-at-top", false, "declare every variable at the top of its function")
	translateCmd.Flags().String("output-dir", "", "directory for generated .cpp files")
	translateCmd.Flags().StringP("output", "o", "", "write a single input's translation to this file ('-' for stdout)")
	translateCmd.Flags().Int("jobs", 0, "maximum concurrent translations (0 = number of CPUs)")
}

var errorColor = color.New(color.FgRed, color.Bold)

func translateExecution(cmd *cobra.Command, args []string) error {
	declareAtTop, err := cmd.Flags().GetBool("declare-variables-at-top")
	if err != nil {
		return err
	}
	outputDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	manifest, found, err := project.Load(".")
	if err != nil {
		return err
	}
	if found {
		if !cmd.Flags().Changed("declare-variables-at-top") {
			declareAtTop = manifest.Config.Translate.DeclareVariablesAtTop
		}
		if !cmd.Flags().Changed("output-dir") && manifest.Config.Translate.OutputDir != "" {
			outputDir = filepath.Join(manifest.Root, manifest.Config.Translate.OutputDir)
		}
	}

	if output != "" {
		if len(args) != 1 {
			return fmt.Errorf("--output requires exactly one input file")
		}
		return translateSingle(args[0], output, declareAtTop)
	}

	results, err := driver.TranslateFiles(cmd.Context(), args, driver.Options{
		DeclareVariablesAtTop: declareAtTop,
		OutputDir:             outputDir,
		Jobs:                  jobs,
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			errorColor.Fprint(os.Stderr, "error: ")
			fmt.Fprintf(os.Stderr, "%v\n", res.Err)
			continue
		}
		fmt.Printf("%s -> %s\n", res.Input, res.Output)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

func translateSingle(input, output string, declareAtTop bool) error {
	root, err := irenc.ReadFile(input)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := cpp.Translate(root, &buf, declareAtTop); err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if output == "-" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(output, buf.Bytes(), 0o644)
}
