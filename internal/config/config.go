// Package config defines process configuration and loading.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"

	"github.com/railtools/consistfix/internal/domain/scoring"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// TrainsetDir is the rolling stock library root; each subdirectory is
	// one asset folder.
	TrainsetDir string `koanf:"trainset_dir"`

	// ConsistDir holds the .con files to resolve.
	ConsistDir string `koanf:"consist_dir"`

	// WorkerCount sets the number of resolution workers. Zero picks a
	// size from the CPU count.
	WorkerCount int `koanf:"worker_count"`

	// DryRun reports what would change without writing any file.
	DryRun bool `koanf:"dry_run"`

	// Explain prints a per-entry resolution report after the run.
	Explain bool `koanf:"explain"`

	// SemanticMatch toggles the fuzzy similarity phase.
	SemanticMatch bool `koanf:"semantic_match"`

	// TieBreakSeed seeds the score perturbation; runs with the same seed
	// resolve identically.
	TieBreakSeed int64 `koanf:"tie_break_seed"`

	// OilIndicators override the substrings that mark a classless freight
	// wagon as oil related.
	OilIndicators []string `koanf:"oil_indicators"`

	// MetricsAddr exposes Prometheus metrics when non-empty, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// Weights is the scoring weight table.
	Weights scoring.Weights `koanf:"weights"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		TrainsetDir:   "trainset",
		ConsistDir:    "consists",
		WorkerCount:   runtime.NumCPU() * 2,
		DryRun:        false,
		Explain:       false,
		SemanticMatch: true,
		TieBreakSeed:  scoring.DefaultSeed,
		MetricsAddr:   "",
		Weights:       scoring.DefaultWeights(),
	}
}
