package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meigma/wasset"
)

// configEnv names the environment variable consulted when --config is not set.
const configEnv = "WASSET_CONFIG"

// Config holds defaults for command flags. Flags set on the command line
// take precedence.
type Config struct {
	// Compression is "none" or "zstd".
	Compression string `yaml:"compression"`

	// Verify checks data digests when reading modules.
	Verify bool `yaml:"verify"`

	// RejectDuplicates fails reading when embeddings share an asset ID.
	RejectDuplicates bool `yaml:"reject_duplicates"`

	// MaxFiles limits the number of assets per embed. Zero uses the library
	// default; negative disables the limit.
	MaxFiles int `yaml:"max_files"`

	// MetadataFile overrides the per-directory metadata file name.
	MetadataFile string `yaml:"metadata_file"`
}

// LoadConfig reads the config file at path. An empty path falls back to
// $WASSET_CONFIG; if that is unset too, the zero Config is returned.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		return Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func parseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports invalid field values.
func (c Config) Validate() error {
	if _, err := c.compression(); err != nil {
		return err
	}
	return nil
}

func (c Config) compression() (wasset.Compression, error) {
	switch c.Compression {
	case "", "none":
		return wasset.CompressionNone, nil
	case "zstd":
		return wasset.CompressionZstd, nil
	default:
		return wasset.CompressionNone, fmt.Errorf("unknown compression %q", c.Compression)
	}
}

// parseOptions returns the read-side options selected by c.
func (c Config) parseOptions() []wasset.ParseOption {
	return []wasset.ParseOption{
		wasset.ParseWithVerify(c.Verify),
		wasset.ParseWithRejectDuplicates(c.RejectDuplicates),
	}
}
