package classify

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fcaddons/addonscan/internal/config"
	"github.com/fcaddons/addonscan/internal/model"
)

// Scanner classifies every addon directory directly under a scan root.
// The top-level enumeration is exactly one directory-listing pass; only the
// nested-layout detector descends further, and only inside each addon.
type Scanner struct {
	// detector performs the per-addon layout checks.
	detector *Detector

	// exclude holds top-level directory names to skip, exact match.
	// The housekeeping directory is always present.
	exclude map[string]struct{}

	// logger receives per-addon debug output.
	logger *slog.Logger
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithDetector replaces the default detector.
func WithDetector(d *Detector) ScannerOption {
	return func(s *Scanner) {
		s.detector = d
	}
}

// WithExcludeDirs adds top-level directory names to skip.
func WithExcludeDirs(names []string) ScannerOption {
	return func(s *Scanner) {
		for _, name := range names {
			s.exclude[name] = struct{}{}
		}
	}
}

// WithLogger sets the logger used for per-addon debug output.
func WithLogger(logger *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// NewScanner creates a Scanner with default settings.
// The housekeeping directory is always excluded regardless of options.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{
		detector: NewDetector(),
		exclude: map[string]struct{}{
			config.HousekeepingDirName: {},
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan enumerates the immediate child directories of root and classifies
// each, returning one record per addon in filesystem enumeration order.
// Non-directories are skipped. Failure to list the root or to descend into
// an addon aborts the scan; there is no partial-result recovery.
//
// The context is checked between addons so an interrupted run stops at the
// next addon boundary.
func (s *Scanner) Scan(ctx context.Context, root string) (*model.ScanResult, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	result := model.NewScanResult(root)

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !entry.IsDir() {
			continue
		}
		if _, skip := s.exclude[entry.Name()]; skip {
			s.logger.Debug("skipping excluded directory", "name", entry.Name())
			continue
		}

		record, err := s.classify(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}

		s.logger.Debug("classified addon",
			"name", record.Name,
			"style", record.Style().String(),
		)

		result.Records = append(result.Records, record)
	}

	return result, nil
}

// classify runs both detectors against a single addon directory.
func (s *Scanner) classify(path string) (model.Record, error) {
	oldLayout := s.detector.HasOldLayout(path)

	newLayout, err := s.detector.HasNewLayout(path)
	if err != nil {
		return model.Record{}, err
	}

	return model.Record{
		Name:      filepath.Base(path),
		Path:      path,
		OldLayout: oldLayout,
		NewLayout: newLayout,
	}, nil
}
