package wasset

import (
	"log/slog"

	"github.com/meigma/wasset/internal/metadata"
)

// DefaultMaxFiles is the default limit used when no EncodeWithMaxFiles option
// is set.
const DefaultMaxFiles = 200_000

// DefaultMetadataFile is the per-directory metadata file name.
const DefaultMetadataFile = metadata.DefaultFileName

// encodeConfig holds configuration for Encode.
type encodeConfig struct {
	compression  Compression
	maxFiles     int
	metadataFile string
	logger       *slog.Logger
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeConfig)

// EncodeWithCompression compresses every serialized record with c.
func EncodeWithCompression(c Compression) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.compression = c
	}
}

// EncodeWithMaxFiles limits the number of assets produced.
// Zero uses DefaultMaxFiles. Negative means no limit.
func EncodeWithMaxFiles(n int) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.maxFiles = n
	}
}

// EncodeWithMetadataFile changes the per-directory metadata file name.
func EncodeWithMetadataFile(name string) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.metadataFile = name
	}
}

// EncodeWithLogger sets the logger.
func EncodeWithLogger(logger *slog.Logger) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.logger = logger
	}
}
