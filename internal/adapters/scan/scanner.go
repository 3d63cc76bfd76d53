// Package scan walks a trainset directory and builds the asset index from
// the engine and wagon files it finds.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/railtools/consistfix/internal/adapters/index"
	"github.com/railtools/consistfix/internal/domain/detect"
	"github.com/railtools/consistfix/internal/domain/metadata"
	"github.com/railtools/consistfix/internal/domain/types"
	"github.com/railtools/consistfix/pkg/logger"
	"github.com/railtools/consistfix/pkg/metrics"
)

const defaultProgressInterval = 50

// Scanner discovers assets under a trainset directory. Each immediate
// subdirectory is an asset folder; .eng files are engines, .wag files
// are wagons.
type Scanner struct {
	extractor     *metadata.Extractor
	detector      *detect.Detector
	progressEvery int
	logger        logger.Logger
}

// New creates a Scanner with configuration options.
func New(extractor *metadata.Extractor, detector *detect.Detector, opts ...Option) *Scanner {
	s := &Scanner{
		extractor:     extractor,
		detector:      detector,
		progressEvery: defaultProgressInterval,
		logger:        logger.Get().Named("scan"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan walks trainsetDir and returns a populated index. Unreadable
// folders and files are skipped with a warning; the scan only fails when
// the directory itself is missing or yields nothing at all.
func (s *Scanner) Scan(ctx context.Context, trainsetDir string) (*index.Index, error) {
	start := time.Now()

	info, err := os.Stat(trainsetDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrTrainsetMissing, trainsetDir)
	}

	entries, err := os.ReadDir(trainsetDir)
	if err != nil {
		return nil, fmt.Errorf("reading trainset directory: %w", err)
	}

	idx := index.New()
	scanned := 0
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !entry.IsDir() {
			continue
		}

		folder := entry.Name()
		if err := s.scanFolder(ctx, idx, trainsetDir, folder); err != nil {
			s.logger.Warn(ctx, "skipping unreadable folder",
				logger.String("folder", folder),
				logger.Error(err),
			)
			continue
		}

		scanned++
		if scanned%s.progressEvery == 0 {
			s.logger.Info(ctx, "scan progress",
				logger.Int("folders", scanned),
				logger.Int("assets", idx.Statistics().TotalAssets),
			)
		}
	}

	stats := idx.Statistics()
	if stats.TotalAssets == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAssets, trainsetDir)
	}

	elapsed := time.Since(start)
	metrics.ObserveScanDuration(elapsed.Seconds())
	metrics.UpdateIndexSize(stats.Engines, stats.Wagons)

	s.logger.Info(ctx, "scan complete",
		logger.Int("folders", scanned),
		logger.Int("engines", stats.Engines),
		logger.Int("wagons", stats.Wagons),
		logger.String("elapsed", elapsed.Round(time.Millisecond).String()),
	)

	return idx, nil
}

// scanFolder indexes every engine and wagon file in one asset folder.
func (s *Scanner) scanFolder(ctx context.Context, idx *index.Index, trainsetDir, folder string) error {
	dir := filepath.Join(trainsetDir, folder)
	files, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		var kind types.Kind
		switch strings.ToLower(filepath.Ext(file.Name())) {
		case ".eng":
			kind = types.KindEngine
		case ".wag":
			kind = types.KindWagon
		default:
			continue
		}

		name := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		path := filepath.Join(dir, file.Name())

		// Some libraries ship wagons saved with an engine extension.
		// The name usually tells the truth; flag the mismatch but
		// trust the extension.
		if role, ok := s.detector.Role(name); ok && role != kind {
			s.logger.Debug(ctx, "asset name disagrees with file extension",
				logger.String("name", name),
				logger.String("extension_kind", kind.String()),
				logger.String("name_kind", role.String()),
			)
		}

		idx.Add(s.extractor.NewRecord(kind, name, folder, path))
	}

	return nil
}
