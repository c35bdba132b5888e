package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ridge/internal/ir"
	"ridge/internal/irenc"
)

func writeModule(t *testing.T, path, funcName string) {
	t.Helper()
	i32 := ir.IntType(32, ir.Signless)
	mod := ir.Module()
	fn := ir.Func(funcName, i32)
	entry := fn.Regions[0].AddBlock()
	c := ir.Constant(i32, ir.IntAttr(i32, 1))
	entry.Append(c, ir.Return(c.Results[0]))
	mod.Body().Append(fn)
	if err := irenc.WriteFile(path, mod); err != nil {
		t.Fatalf("write module: %v", err)
	}
}

func TestTranslateFiles(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		filepath.Join(dir, "one.rir"),
		filepath.Join(dir, "two.rir"),
	}
	writeModule(t, inputs[0], "one")
	writeModule(t, inputs[1], "two")

	outDir := filepath.Join(dir, "gen")
	results, err := TranslateFiles(context.Background(), inputs, Options{OutputDir: outDir})
	if err != nil {
		t.Fatalf("TranslateFiles failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("input %s failed: %v", res.Input, res.Err)
		}
		if res.Input != inputs[i] {
			t.Errorf("results out of order: %q at %d", res.Input, i)
		}
		data, err := os.ReadFile(res.Output)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		if !strings.Contains(string(data), "int32_t") {
			t.Errorf("unexpected output for %s:\n%s", res.Input, data)
		}
	}
}

func TestTranslateFilesReportsPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.rir")
	bad := filepath.Join(dir, "bad.rir")
	writeModule(t, good, "good")
	if err := os.WriteFile(bad, []byte("not a module"), 0o644); err != nil {
		t.Fatalf("write bad input: %v", err)
	}

	results, err := TranslateFiles(context.Background(), []string{good, bad}, Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("TranslateFiles failed: %v", err)
	}
	if results[0].Err != nil {
		t.Errorf("good input failed: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("bad input did not fail")
	}
	if _, statErr := os.Stat(OutputPath(bad, dir)); statErr == nil {
		t.Error("failed input left an output file behind")
	}
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("a/b/mod.rir", ""); got != filepath.Join("a", "b", "mod.cpp") {
		t.Errorf("OutputPath no dir = %q", got)
	}
	if got := OutputPath("mod.rir", "gen"); got != filepath.Join("gen", "mod.cpp") {
		t.Errorf("OutputPath with dir = %q", got)
	}
}
