package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads valid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `namespace_dir: freecad
exclude:
  - vendor
  - .git
max_depth: 8
output: report.csv
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.NamespaceDir != "freecad" {
			t.Errorf("expected namespace_dir freecad, got %q", cf.NamespaceDir)
		}
		if len(cf.Exclude) != 2 || cf.Exclude[0] != "vendor" {
			t.Errorf("unexpected exclude list: %v", cf.Exclude)
		}
		if cf.MaxDepth != 8 {
			t.Errorf("expected max_depth 8, got %d", cf.MaxDepth)
		}
		if cf.Output != "report.csv" {
			t.Errorf("expected output report.csv, got %q", cf.Output)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(":\n\t- broken"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("non-zero fields override config", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ExcludeDirs = []string{"already"}

		cf := &File{
			NamespaceDir: "vendor_ns",
			Exclude:      []string{"extra"},
			MaxDepth:     3,
			Output:       "custom.csv",
		}
		cf.Apply(cfg)

		if cfg.NamespaceDir != "vendor_ns" {
			t.Errorf("expected namespace override, got %q", cfg.NamespaceDir)
		}
		if len(cfg.ExcludeDirs) != 2 || cfg.ExcludeDirs[1] != "extra" {
			t.Errorf("expected exclusions appended, got %v", cfg.ExcludeDirs)
		}
		if cfg.MaxDepth != 3 {
			t.Errorf("expected max depth 3, got %d", cfg.MaxDepth)
		}
		if cfg.OutputPath != "custom.csv" {
			t.Errorf("expected output custom.csv, got %q", cfg.OutputPath)
		}
	})

	t.Run("zero fields leave config untouched", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{}).Apply(cfg)

		if cfg.NamespaceDir != DefaultNamespaceDir {
			t.Errorf("expected default namespace, got %q", cfg.NamespaceDir)
		}
		if cfg.MaxDepth != DefaultMaxDepth {
			t.Errorf("expected default max depth, got %d", cfg.MaxDepth)
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("max_depth: 4\n"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}
