package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/absfs/staticcompress"
)

// fileConfig is the YAML config file layout. Unset fields keep their
// defaults.
type fileConfig struct {
	Extensions   []string `yaml:"extensions"`
	Methods      []string `yaml:"methods"`
	KeepOriginal *bool    `yaml:"keep_original"`
	MinSizeKB    *int64   `yaml:"min_size_kb"`
	Workers      *int     `yaml:"workers"`
}

// loadConfig resolves the library config from defaults, the config file at
// path (if any) and the flags set on cmd, in that order.
func loadConfig(cmd *cobra.Command, path string) (*staticcompress.Config, error) {
	cfg := staticcompress.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		var fc fileConfig
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		fc.apply(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("extensions") {
		cfg.Extensions = extensions
	}
	if flags.Changed("methods") {
		cfg.Methods = methods
	}
	if flags.Changed("keep-original") {
		cfg.KeepOriginal = keepOriginal
	}
	if flags.Changed("min-size-kb") {
		cfg.MinSizeKB = minSizeKB
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	if cfg.MinSizeKB < 0 {
		return nil, fmt.Errorf("min size must not be negative: %d", cfg.MinSizeKB)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *staticcompress.Config) {
	if fc.Extensions != nil {
		cfg.Extensions = fc.Extensions
	}
	if fc.Methods != nil {
		cfg.Methods = fc.Methods
	}
	if fc.KeepOriginal != nil {
		cfg.KeepOriginal = *fc.KeepOriginal
	}
	if fc.MinSizeKB != nil {
		cfg.MinSizeKB = *fc.MinSizeKB
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
}
