package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"saxwasm/internal/config"
)

// mergeFlags overlays the flags the user set explicitly on the loaded
// config and validates the result.
func mergeFlags(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	f := cmd.Flags()
	if f.Changed("events") {
		v, _ := f.GetString("events")
		cfg.Events = splitList(v)
	}
	if f.Changed("chunk-size") {
		cfg.ChunkSize, _ = f.GetInt("chunk-size")
	}
	if f.Changed("input-size") {
		cfg.InputSize, _ = f.GetInt("input-size")
	}
	if f.Changed("whitespace-text") {
		cfg.WhitespaceText, _ = f.GetBool("whitespace-text")
	}
	if f.Changed("encoding") {
		cfg.Encoding, _ = f.GetString("encoding")
	}
	if f.Changed("jobs") {
		cfg.Jobs, _ = f.GetInt("jobs")
	}
	if f.Changed("format") {
		cfg.Format, _ = f.GetString("format")
	}
	cfg.Format = strings.ToLower(cfg.Format)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", configSource(), err)
	}
	return cfg, nil
}

func configSource() string {
	if state.cfgPath == "" {
		return "flags"
	}
	return state.cfgPath
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
