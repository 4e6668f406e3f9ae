// Package config loads CLI defaults from a YAML file.
//
// The file is given by the --config flag or the LSBSTEG_CONFIG
// environment variable. There is no discovery: with neither set, the
// built-in defaults apply. Flags given on the command line always win
// over the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/davesmith10/lsbsteg/internal/color"
	"github.com/davesmith10/lsbsteg/internal/payload"
	"github.com/davesmith10/lsbsteg/internal/steg"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "LSBSTEG_CONFIG"

// Config holds defaults for the encode and decode commands. Every field
// mirrors a command-line flag of the same name.
type Config struct {
	// Orientation is "horizontal" or "vertical".
	Orientation string `yaml:"orientation"`

	// Codec is the compression codec: "deflate" or "zstd".
	Codec string `yaml:"codec"`

	// KDF is the passphrase key derivation: "sha256", "blake3" or "argon2id".
	KDF string `yaml:"kdf"`

	// SRGB converts ICC-tagged input images to sRGB before embedding.
	SRGB bool `yaml:"srgb"`

	// Intent is the rendering intent used by the sRGB conversion.
	Intent string `yaml:"intent"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Orientation: steg.Horizontal.String(),
		Codec:       payload.CodecDeflate.String(),
		KDF:         payload.KDFSHA256.String(),
		SRGB:        false,
		Intent:      "perceptual",
		LogLevel:    "warn",
	}
}

// Load reads the file named by path, falling back to LSBSTEG_CONFIG when
// path is empty. With neither set, Default is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads defaults from a specific file path over Default.
// Unknown keys are an error so that typos do not silently fall back.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every enumerated field.
func (c *Config) Validate() error {
	if _, err := steg.ParseOrientation(c.Orientation); err != nil {
		return err
	}
	if _, err := payload.ParseCodec(c.Codec); err != nil {
		return err
	}
	if _, err := payload.ParseKDF(c.KDF); err != nil {
		return err
	}
	if _, err := color.ParseIntent(c.Intent); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.LogLevel)
	}
	return nil
}
