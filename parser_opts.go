package wasset

import "log/slog"

// ParseOption configures a Parser.
type ParseOption func(*parseConfig)

// parseConfig holds configuration for Parse and NewParser.
type parseConfig struct {
	merge            []MergeOption
	maxDecoderMemory uint64
	logger           *slog.Logger
}

// ParseWithVerify checks every data section against the digest recorded in
// its manifest while merging.
func ParseWithVerify(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.merge = append(cfg.merge, MergeWithVerify(enabled))
	}
}

// ParseWithRejectDuplicates fails parsing when two embeddings define the same
// asset ID.
func ParseWithRejectDuplicates(enabled bool) ParseOption {
	return func(cfg *parseConfig) {
		cfg.merge = append(cfg.merge, MergeWithRejectDuplicates(enabled))
	}
}

// ParseWithMaxDecoderMemory limits the memory used by the zstd decoder for
// compressed embeddings. Set limit to 0 to disable the limit.
func ParseWithMaxDecoderMemory(limit uint64) ParseOption {
	return func(cfg *parseConfig) {
		cfg.maxDecoderMemory = limit
	}
}

// ParseWithLogger sets the logger.
func ParseWithLogger(logger *slog.Logger) ParseOption {
	return func(cfg *parseConfig) {
		cfg.logger = logger
	}
}
