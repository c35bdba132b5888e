// Package driver runs translations over sets of input files.
package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"ridge/internal/backend/cpp"
	"ridge/internal/irenc"
)

// Options configures a batch translation.
type Options struct {
	DeclareVariablesAtTop bool
	OutputDir             string
	Jobs                  int
}

// Result reports one input's outcome. Output is the written path, empty when
// the input failed.
type Result struct {
	Input  string
	Output string
	Err    error
}

// TranslateFiles translates every input concurrently, one fresh emitter per
// file, and returns per-file results in input order. The translation is
// buffered so a failed input leaves no partial output file behind. The error
// return is reserved for setup and context cancellation; per-file failures
// live in the results.
func TranslateFiles(ctx context.Context, inputs []string, opts Options) ([]Result, error) {
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return nil, err
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, input := range inputs {
		i, input := i, input
		results[i].Input = input
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			output, err := translateOne(input, opts)
			results[i].Output = output
			results[i].Err = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func translateOne(input string, opts Options) (string, error) {
	root, err := irenc.ReadFile(input)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := cpp.Translate(root, &buf, opts.DeclareVariablesAtTop); err != nil {
		return "", fmt.Errorf("%s: %w", input, err)
	}

	output := OutputPath(input, opts.OutputDir)
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return output, nil
}

// OutputPath derives the .cpp path for an input, in dir when set, otherwise
// next to the input.
func OutputPath(input, dir string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".cpp"
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}
