package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fcaddons/addonscan/internal/classify"
	"github.com/fcaddons/addonscan/internal/config"
	"github.com/fcaddons/addonscan/internal/database"
	applog "github.com/fcaddons/addonscan/internal/log"
	"github.com/fcaddons/addonscan/internal/model"
	"github.com/fcaddons/addonscan/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [addons-root]",
		Short: "Scan an addons root and classify each addon's layout",
		Long: `Scan enumerates the immediate child directories of an addons root,
classifies each by its initialization-file layout, writes a CSV report,
and prints a summary.

The housekeeping directory (utils) at the top level is never scanned.

When no root is given, it is derived from the addonscan executable's own
location, two directory levels up. That matches the historical deployment
inside an addons checkout (<root>/utils/addonscan); pass the root
explicitly when running from anywhere else.

Examples:
  # Scan an addons checkout
  addonscan scan ~/src/FreeCAD-addons

  # Write the CSV somewhere else
  addonscan scan -o /tmp/report.csv ~/src/FreeCAD-addons

  # Also emit Markdown and JSON renditions
  addonscan scan -m report.md -j report.json ~/src/FreeCAD-addons

  # Use a custom configuration file
  addonscan scan -c myconfig.yaml ~/src/FreeCAD-addons

Configuration file (.addonscan) example:
  namespace_dir: freecad
  max_depth: 8
  exclude:
    - .git
    - vendor`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScanCmd,
	}

	// Report flags
	cmd.Flags().StringP("output", "o", "",
		"CSV report path (default: <root>/utils/workbench_report.csv)")
	cmd.Flags().StringP("markdown", "m", "",
		"Also write a Markdown report to the given path")
	cmd.Flags().StringP("json", "j", "",
		"Also write a JSON report to the given path")

	// Detection flags
	cmd.Flags().IntP("max-depth", "d", config.DefaultMaxDepth,
		"Maximum depth of the nested-layout search inside each addon")
	cmd.Flags().StringSliceP("exclude", "x", nil,
		"Additional top-level directory names to skip")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .addonscan in current or home directory)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling so an interrupted scan stops
	// at the next addon boundary
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
// Precedence: defaults, then the config file, then explicit flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Scan root: explicit argument wins, otherwise the self-locating default.
	if len(args) > 0 {
		cfg.Root = args[0]
	} else {
		root, err := defaultRoot()
		if err != nil {
			return nil, fmt.Errorf("cannot derive default scan root: %w", err)
		}
		cfg.Root = root
	}

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load settings from the config file, if any.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently continue without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flags win over the config file, so apply them only when set.
	if cmd.Flags().Changed("output") {
		cfg.OutputPath, err = cmd.Flags().GetString("output")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth, err = cmd.Flags().GetInt("max-depth")
		if err != nil {
			return nil, err
		}
	}

	excludes, err := cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return nil, err
	}
	cfg.ExcludeDirs = append(cfg.ExcludeDirs, excludes...)

	cfg.MarkdownPath, err = cmd.Flags().GetString("markdown")
	if err != nil {
		return nil, err
	}

	cfg.JSONPath, err = cmd.Flags().GetString("json")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory
	cfg.Verbose = getVerboseFlag(cmd)

	if cfg.OutputPath == "" {
		cfg.OutputPath = cfg.DefaultOutputPath()
	}

	return cfg, nil
}

// defaultRoot derives the addons root from the executable's own location,
// two directory levels up (<root>/utils/addonscan).
func defaultRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Paths under the home directory are abbreviated for readability.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(applog.NewTidyPathHandler(handler))
}

// runScan executes the scan and writes all requested outputs.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting scan",
		"root", cfg.Root,
		"output", cfg.OutputPath,
		"maxDepth", cfg.MaxDepth,
		"saveHistory", cfg.SaveHistory,
	)

	fmt.Printf("Scanning: %s\n", cfg.Root)

	scanner := classify.NewScanner(
		classify.WithDetector(classify.NewDetector(
			classify.WithNamespaceDir(cfg.NamespaceDir),
			classify.WithMaxDepth(cfg.MaxDepth),
		)),
		classify.WithExcludeDirs(cfg.ExcludeDirs),
		classify.WithLogger(logger),
	)

	result, err := scanner.Scan(ctx, cfg.Root)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if err := writeReport(cfg.OutputPath, result, func(f *os.File) report.Writer {
		return report.NewCSVWriter(f)
	}); err != nil {
		return fmt.Errorf("failed to write CSV report: %w", err)
	}
	fmt.Printf("CSV written to: %s\n", cfg.OutputPath)

	if cfg.MarkdownPath != "" {
		if err := writeReport(cfg.MarkdownPath, result, func(f *os.File) report.Writer {
			return report.NewMarkdownWriter(f)
		}); err != nil {
			return fmt.Errorf("failed to write Markdown report: %w", err)
		}
		fmt.Printf("Markdown written to: %s\n", cfg.MarkdownPath)
	}

	if cfg.JSONPath != "" {
		if err := writeReport(cfg.JSONPath, result, func(f *os.File) report.Writer {
			return report.NewJSONWriter(f, report.WithPrettyPrint())
		}); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
		fmt.Printf("JSON written to: %s\n", cfg.JSONPath)
	}

	if _, err := report.NewSummaryWriter(os.Stdout).Write(result); err != nil {
		return err
	}

	// Record the run. History is auxiliary, so failures are logged and
	// do not fail the scan.
	if cfg.SaveHistory {
		if err := saveScanResult(ctx, cfg, result, logger); err != nil {
			logger.Warn("failed to record scan history", "error", err)
		}
	}

	return nil
}

// writeReport writes the result to path through the writer the factory
// builds, creating parent directories as needed. The file is truncated
// first and closed deterministically.
func writeReport(path string, result *model.ScanResult, factory func(*os.File) report.Writer) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // Reports are not sensitive
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	_, werr := factory(f).Write(result)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

// saveScanResult records the run in the history database.
func saveScanResult(ctx context.Context, cfg *config.Config, result *model.ScanResult, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	runID, err := db.SaveScanResult(ctx, result)
	if err != nil {
		return err
	}

	logger.Info("scan recorded", "runID", runID, "dbDir", cfg.DBDir)
	return nil
}
