package config

import (
	"context"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if AQDASH_CONFIG is set
//  3. env (prefix AQDASH_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("AQDASH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Map env keys like AQDASH_DATA_PATH -> data_path (flat keys).
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("AQDASH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "aqdash_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	switch {
	case cfg.Addr == "":
		return nil, ErrEmptyAddr
	case cfg.DataPath == "":
		return nil, ErrEmptyPath
	case cfg.ModelPath == "":
		return nil, ErrEmptyPath
	case cfg.ScalerPath == "":
		return nil, ErrEmptyPath
	}
	return &cfg, nil
}
