package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fcaddons/addonscan/internal/config"
)

// writeMarker creates an empty marker file, creating parents as needed.
func writeMarker(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
}

func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"output", "markdown", "json", "max-depth", "exclude", "config", "no-history"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q", name)
			}
		}
	})

	t.Run("max-depth defaults to config default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("max-depth")
		if flag == nil {
			t.Fatal("expected max-depth flag")
		}
		if flag.DefValue != "16" {
			t.Errorf("expected default 16, got %q", flag.DefValue)
		}
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("explicit root argument wins", func(t *testing.T) {
		t.Parallel()

		cfg, err := buildConfig(NewScanCmd(), []string{"/some/addons"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Root != "/some/addons" {
			t.Errorf("expected root /some/addons, got %q", cfg.Root)
		}
	})

	t.Run("output defaults into the housekeeping directory", func(t *testing.T) {
		t.Parallel()

		cfg, err := buildConfig(NewScanCmd(), []string{"/some/addons"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := filepath.Join("/some/addons", config.HousekeepingDirName, config.DefaultReportFileName)
		if cfg.OutputPath != want {
			t.Errorf("expected output %q, got %q", want, cfg.OutputPath)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("output", "/tmp/out.csv"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		if err := cmd.Flags().Set("max-depth", "3"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		if err := cmd.Flags().Set("exclude", "vendor"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"/some/addons"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.OutputPath != "/tmp/out.csv" {
			t.Errorf("expected output /tmp/out.csv, got %q", cfg.OutputPath)
		}
		if cfg.MaxDepth != 3 {
			t.Errorf("expected max depth 3, got %d", cfg.MaxDepth)
		}
		if len(cfg.ExcludeDirs) != 1 || cfg.ExcludeDirs[0] != "vendor" {
			t.Errorf("unexpected exclusions: %v", cfg.ExcludeDirs)
		}
	})

	t.Run("config file settings are applied", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cfg.yaml")
		if err := os.WriteFile(path, []byte("max_depth: 5\nexclude:\n  - skipme\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("config", path); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"/some/addons"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxDepth != 5 {
			t.Errorf("expected max depth 5 from file, got %d", cfg.MaxDepth)
		}
		if len(cfg.ExcludeDirs) != 1 || cfg.ExcludeDirs[0] != "skipme" {
			t.Errorf("unexpected exclusions: %v", cfg.ExcludeDirs)
		}
	})

	t.Run("flag overrides config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cfg.yaml")
		if err := os.WriteFile(path, []byte("max_depth: 5\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("config", path); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		if err := cmd.Flags().Set("max-depth", "2"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"/some/addons"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxDepth != 2 {
			t.Errorf("expected flag to win with 2, got %d", cfg.MaxDepth)
		}
	})

	t.Run("explicit missing config file errors", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		if _, err := buildConfig(cmd, []string{"/some/addons"}); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("no-history disables recording", func(t *testing.T) {
		t.Parallel()

		cmd := NewScanCmd()
		if err := cmd.Flags().Set("no-history", "true"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"/some/addons"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.SaveHistory {
			t.Error("expected history recording disabled")
		}
	})
}

// TestScanCommand runs the scan end to end against a synthetic tree.
func TestScanCommand(t *testing.T) {
	// Not parallel: the command writes its summary to process stdout.

	root := t.TempDir()

	// Scenario A: flat layout only.
	writeMarker(t, filepath.Join(root, "FlatWB", "Init.py"))
	writeMarker(t, filepath.Join(root, "FlatWB", "InitGui.py"))

	// Scenario B: nested layout only.
	writeMarker(t, filepath.Join(root, "NestedWB", "freecad", "mymod", "__init__.py"))
	writeMarker(t, filepath.Join(root, "NestedWB", "freecad", "mymod", "init_gui.py"))

	// Scenario C: both.
	writeMarker(t, filepath.Join(root, "BothWB", "Init.py"))
	writeMarker(t, filepath.Join(root, "BothWB", "InitGui.py"))
	writeMarker(t, filepath.Join(root, "BothWB", "freecad", "wb", "__init__.py"))
	writeMarker(t, filepath.Join(root, "BothWB", "freecad", "wb", "init_gui.py"))

	// Scenario D: neither.
	if err := os.MkdirAll(filepath.Join(root, "EmptyWB"), 0750); err != nil {
		t.Fatalf("failed to create addon: %v", err)
	}

	// Housekeeping directory must not appear in the report.
	writeMarker(t, filepath.Join(root, "utils", "Init.py"))
	writeMarker(t, filepath.Join(root, "utils", "InitGui.py"))

	output := filepath.Join(t.TempDir(), "report.csv")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"scan", root, "--output", output, "--no-history"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 rows, got %d lines:\n%s", len(lines), data)
	}
	if lines[0] != "name,style,path,old_style,new_style" {
		t.Errorf("unexpected header: %q", lines[0])
	}

	rows := make(map[string]string, len(lines)-1)
	for _, line := range lines[1:] {
		name, rest, ok := strings.Cut(line, ",")
		if !ok {
			t.Fatalf("malformed row: %q", line)
		}
		rows[name] = rest
	}

	if _, ok := rows["utils"]; ok {
		t.Error("housekeeping directory must not be reported")
	}
	if got := rows["FlatWB"]; !strings.HasPrefix(got, "old,") || !strings.HasSuffix(got, ",true,false") {
		t.Errorf("unexpected FlatWB row: %q", got)
	}
	if got := rows["NestedWB"]; !strings.HasPrefix(got, "new,") || !strings.HasSuffix(got, ",false,true") {
		t.Errorf("unexpected NestedWB row: %q", got)
	}
	if got := rows["BothWB"]; !strings.HasPrefix(got, "mixed,") || !strings.HasSuffix(got, ",true,true") {
		t.Errorf("unexpected BothWB row: %q", got)
	}
	if got := rows["EmptyWB"]; !strings.HasPrefix(got, "unknown,") || !strings.HasSuffix(got, ",false,false") {
		t.Errorf("unexpected EmptyWB row: %q", got)
	}

	t.Run("rescan produces identical bytes", func(t *testing.T) {
		second := filepath.Join(t.TempDir(), "report2.csv")

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"scan", root, "--output", second, "--no-history"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("rescan failed: %v", err)
		}

		again, err := os.ReadFile(second)
		if err != nil {
			t.Fatalf("failed to read second report: %v", err)
		}
		if string(again) != string(data) {
			t.Error("expected byte-identical report on rescan")
		}
	})

	t.Run("missing root fails the command", func(t *testing.T) {
		cmd := NewRootCmd()
		cmd.SetArgs([]string{"scan", filepath.Join(t.TempDir(), "gone"), "--no-history"})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for missing root")
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected wrapped fs.ErrNotExist, got %v", err)
		}
	})
}
