package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/webmanifest"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = ".webmanifest.yaml"

// Parse holds document decoding limits.
type Parse struct {
	DuplicateKeys string `yaml:"duplicate_keys"`
	MaxDepth      int    `yaml:"max_depth"`
	MaxBytes      int64  `yaml:"max_bytes"`
}

// Config mirrors .webmanifest.yaml.
type Config struct {
	// Format is the report format: text, json or yaml.
	Format      string `yaml:"format"`
	Hints       bool   `yaml:"hints"`
	Schema      bool   `yaml:"schema"`
	Concurrency int    `yaml:"concurrency"`
	Parse       Parse  `yaml:"parse"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Format:      "text",
		Hints:       true,
		Concurrency: 4,
		Parse:       Parse{DuplicateKeys: "ignore"},
	}
}

// Decode reads a YAML configuration on top of the defaults. Unknown keys are
// rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration at path. When path is empty the default file
// is tried and its absence is not an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown report format %q, valid formats are: text, json, yaml", c.Format)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if _, err := ParseSeverity(c.Parse.DuplicateKeys); err != nil {
		return err
	}
	if c.Parse.MaxDepth < 0 || c.Parse.MaxBytes < 0 {
		return errors.New("parse limits must not be negative")
	}
	return nil
}

// ParseSeverity maps ignore, warn and error to a webmanifest.Severity.
func ParseSeverity(s string) (webmanifest.Severity, error) {
	switch strings.ToLower(s) {
	case "", "ignore":
		return webmanifest.Ignore, nil
	case "warn":
		return webmanifest.Warn, nil
	case "error":
		return webmanifest.Error, nil
	}
	return webmanifest.Ignore, fmt.Errorf("unknown duplicate key policy %q, valid values are: ignore, warn, error", s)
}

// ParseOpt converts the parse section. Call Validate first.
func (c Config) ParseOpt() webmanifest.ParseOpt {
	sev, _ := ParseSeverity(c.Parse.DuplicateKeys)
	return webmanifest.ParseOpt{
		Strictness: webmanifest.Strictness{OnDuplicateKey: sev},
		MaxDepth:   c.Parse.MaxDepth,
		MaxBytes:   c.Parse.MaxBytes,
	}
}
