package wasset

import (
	"errors"
	"fmt"

	"github.com/meigma/wasset/internal/compress"
	"github.com/meigma/wasset/internal/metadata"
	"github.com/meigma/wasset/internal/wasm"
)

// Error classes. Every error returned by this package wraps exactly one of
// them.
var (
	// ErrSerialize is returned for failures on the encode path.
	ErrSerialize = errors.New("wasset: serialization failed")

	// ErrDeserialize is returned for failures on the decode path.
	ErrDeserialize = errors.New("wasset: deserialization failed")
)

// Specific causes, wrapped together with an error class.
var (
	// ErrMetadataNotTable is returned when a metadata entry is not a table.
	ErrMetadataNotTable = metadata.ErrNotTable

	// ErrSizeOverflow is returned when an offset does not fit in 32 bits.
	ErrSizeOverflow = errors.New("size overflow")

	// ErrTooManyFiles is returned when encoding accepts more files than allowed.
	ErrTooManyFiles = errors.New("too many files")

	// ErrMalformedModule is returned when the module framing is invalid.
	ErrMalformedModule = wasm.ErrMalformed

	// ErrMissingManifest is returned when an embedding has a data section but
	// no manifest section.
	ErrMissingManifest = errors.New("embedding has no manifest section")

	// ErrMissingData is returned when an embedding has a manifest section but
	// no data section.
	ErrMissingData = errors.New("embedding has no data section")

	// ErrOutOfRange is returned when a byte range does not fit its buffer.
	ErrOutOfRange = errors.New("byte range out of bounds")

	// ErrDuplicateID is returned when two embeddings define the same asset ID
	// and duplicates are rejected.
	ErrDuplicateID = errors.New("asset ID defined by more than one embedding")

	// ErrDigestMismatch is returned when a data section does not match the
	// digest recorded in its manifest.
	ErrDigestMismatch = errors.New("data digest mismatch")

	// ErrDecompression is returned when a compressed record cannot be
	// decompressed.
	ErrDecompression = compress.ErrDecompression
)

func serializeError(err error) error {
	if err == nil || errors.Is(err, ErrSerialize) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSerialize, err)
}

func deserializeError(err error) error {
	if err == nil || errors.Is(err, ErrDeserialize) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrDeserialize, err)
}
