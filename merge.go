package wasset

import (
	"bytes"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// mergeConfig holds configuration for Merge.
type mergeConfig struct {
	verify           bool
	rejectDuplicates bool
	logger           *slog.Logger
}

// MergeOption configures Merge.
type MergeOption func(*mergeConfig)

// MergeWithVerify checks each data section against the digest recorded in
// its manifest. Manifests without a digest are accepted unchecked.
func MergeWithVerify(enabled bool) MergeOption {
	return func(cfg *mergeConfig) {
		cfg.verify = enabled
	}
}

// MergeWithRejectDuplicates makes an asset ID defined by more than one
// embedding an error. By default the embedding with the greater UUID wins.
func MergeWithRejectDuplicates(enabled bool) MergeOption {
	return func(cfg *mergeConfig) {
		cfg.rejectDuplicates = enabled
	}
}

// MergeWithLogger sets the logger for merge diagnostics.
func MergeWithLogger(logger *slog.Logger) MergeOption {
	return func(cfg *mergeConfig) {
		cfg.logger = logger
	}
}

// Merge combines the manifests of every embedding into one manifest whose
// ranges are absolute offsets into the scanned module.
//
// Each embedding must have both a manifest and a data section. Every range
// must lie within its own data section. Embeddings are merged in ascending
// UUID order.
func Merge(offsets map[uuid.UUID]*Offsets, opts ...MergeOption) (*GlobalManifest, error) {
	cfg := mergeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	merged := NewGlobalManifest()
	order := slices.SortedFunc(maps.Keys(offsets), func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	for _, embedding := range order {
		if err := mergeOne(merged, embedding, offsets[embedding], &cfg, logger); err != nil {
			return nil, deserializeError(err)
		}
	}
	return merged, nil
}

func mergeOne(merged *GlobalManifest, embedding uuid.UUID, o *Offsets, cfg *mergeConfig, logger *slog.Logger) error {
	switch {
	case !o.HasManifest:
		return fmt.Errorf("%w: %s", ErrMissingManifest, embedding)
	case !o.HasData:
		return fmt.Errorf("%w: %s", ErrMissingData, embedding)
	}

	m, err := DecodeManifest(o.Manifest)
	if err != nil {
		return fmt.Errorf("manifest %s: %w", embedding, err)
	}

	if cfg.verify && m.DataDigest != "" {
		if err := verifyData(m, o.Data); err != nil {
			return fmt.Errorf("embedding %s: %w", embedding, err)
		}
	}

	for id, r := range m.AssetRanges {
		if !r.Within(len(o.Data)) {
			return fmt.Errorf("%w: asset %s range %s exceeds data section of embedding %s (%d bytes)",
				ErrOutOfRange, id, r, embedding, len(o.Data))
		}
		abs, ok := r.Shift(o.DataOffset)
		if !ok {
			return fmt.Errorf("%w: asset %s in embedding %s", ErrSizeOverflow, id, embedding)
		}
		if prev, dup := merged.Lookup(id); dup {
			if cfg.rejectDuplicates {
				return fmt.Errorf("%w: %s in embeddings %s and %s", ErrDuplicateID, id, prev.Embedding, embedding)
			}
			logger.Warn("asset ID redefined", "id", id.String(), "previous", prev.Embedding.String(), "embedding", embedding.String())
		}
		merged.Set(id, Location{Range: abs, Compression: m.Compression, Embedding: embedding})
	}

	logger.Debug("merged embedding", "embedding", embedding.String(), "assets", len(m.AssetRanges), "data_offset", o.DataOffset)
	return nil
}

func verifyData(m *Manifest, data []byte) error {
	if err := m.DataDigest.Validate(); err != nil {
		return fmt.Errorf("data digest: %w", err)
	}
	v := m.DataDigest.Verifier()
	if _, err := v.Write(data); err != nil {
		return err
	}
	if !v.Verified() {
		return fmt.Errorf("%w: expected %s", ErrDigestMismatch, m.DataDigest)
	}
	return nil
}
