package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if CONSISTFIX_CONFIG is set
//  3. env (prefix CONSISTFIX_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("CONSISTFIX_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CONSISTFIX_TRAINSET_DIR, CONSISTFIX_WORKER_COUNT, ...
	// Map env keys like CONSISTFIX_WORKER_COUNT -> worker_count (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("CONSISTFIX_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "consistfix_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.TrainsetDir == "" {
		return nil, fmt.Errorf("%w: trainset_dir must not be empty", ErrInvalidConfig)
	}
	if cfg.ConsistDir == "" {
		return nil, fmt.Errorf("%w: consist_dir must not be empty", ErrInvalidConfig)
	}
	return &cfg, nil
}
