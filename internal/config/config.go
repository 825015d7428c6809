// Package config loads tokenizer settings from saxwasm.toml or
// .saxwasm.yaml. Files are searched upward from the working directory;
// an explicit path wins over discovery.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"saxwasm/internal/event"
)

// FileNames are the names searched in every directory, in order.
var FileNames = []string{"saxwasm.toml", ".saxwasm.yaml", ".saxwasm.yml"}

const (
	DefaultChunkSize      = 32 * 1024
	DefaultMaxDiagnostics = 100
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Events         []string `toml:"events"          yaml:"events"`
	ChunkSize      int      `toml:"chunk_size"      yaml:"chunk_size"`
	InputSize      int      `toml:"input_size"      yaml:"input_size"`
	WhitespaceText bool     `toml:"whitespace_text" yaml:"whitespace_text"`
	MaxDiagnostics int      `toml:"max_diagnostics" yaml:"max_diagnostics"`
	LogLevel       string   `toml:"log_level"       yaml:"log_level"`
	Encoding       string   `toml:"encoding"        yaml:"encoding"`
	Jobs           int      `toml:"jobs"            yaml:"jobs"`
	Format         string   `toml:"format"          yaml:"format"`
}

// Default is the configuration used when no file is found.
func Default() Config {
	return Config{
		Events:         []string{"all"},
		ChunkSize:      DefaultChunkSize,
		MaxDiagnostics: DefaultMaxDiagnostics,
		LogLevel:       "info",
		Format:         "pretty",
	}
}

// EventSet parses Events.
func (c *Config) EventSet() (event.Set, error) {
	s, err := event.ParseNames(c.Events)
	if err != nil {
		return event.None, fmt.Errorf("%w: events: %w", ErrInvalid, err)
	}
	return s, nil
}

func (c *Config) Validate() error {
	if _, err := c.EventSet(); err != nil {
		return err
	}
	switch {
	case c.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalid, c.ChunkSize)
	case c.InputSize < 0:
		return fmt.Errorf("%w: input_size must not be negative, got %d", ErrInvalid, c.InputSize)
	case c.Jobs < 0:
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalid, c.Jobs)
	case c.MaxDiagnostics < 0:
		return fmt.Errorf("%w: max_diagnostics must not be negative, got %d", ErrInvalid, c.MaxDiagnostics)
	}
	switch c.Format {
	case "pretty", "json", "msgpack":
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}
	return nil
}

// Find walks up from startDir looking for one of FileNames.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load returns the configuration at explicit, or the one discovered from
// workDir, layered over Default. path is "" when nothing was found.
func Load(explicit, workDir string) (cfg Config, path string, err error) {
	cfg = Default()
	path = explicit
	if path == "" {
		var ok bool
		path, ok, err = Find(workDir)
		if err != nil || !ok {
			return cfg, "", err
		}
	}
	if err := LoadFile(path, &cfg); err != nil {
		return Default(), path, err
	}
	return cfg, path, nil
}

// LoadFile decodes path into cfg by extension. Keys missing from the file
// keep the values already in cfg; unknown keys are an error.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(data, cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		return fmt.Errorf("%s: unsupported config format", path)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// пустой файл не ошибка
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}
