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
//  1. defaults (New())
//  2. file (YAML) if ROSTER_CONFIG is set
//  3. env (prefix ROSTER_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("ROSTER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: ROSTER_LIMIT, ROSTER_OUTPUT_PATH, ...
	// Map env keys like ROSTER_OUTPUT_PATH -> output_path (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ROSTER_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "roster_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.RawPath == "" {
		return nil, fmt.Errorf("%w: raw_path must not be empty", ErrInvalidConfig)
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("%w: output_path must not be empty", ErrInvalidConfig)
	}
	if cfg.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
