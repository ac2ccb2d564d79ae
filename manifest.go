package wasset

import (
	_ "crypto/sha256" // registers the hash behind digest.Canonical
	"iter"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"

	"github.com/meigma/wasset/internal/codec"
	"github.com/meigma/wasset/internal/compress"
)

// Compression identifies the compression applied to the records of an
// embedding.
type Compression = compress.Compression

const (
	CompressionNone = compress.None
	CompressionZstd = compress.Zstd
)

// Manifest is the index of a single embedding, stored in its manifest
// section. Ranges are relative to the start of the embedding's data section.
type Manifest struct {
	// AssetRanges maps each asset to its serialized record.
	AssetRanges map[ID]Range `cbor:"asset_ranges"`

	// Compression applies to every record in the embedding.
	Compression Compression `cbor:"compression,omitempty"`

	// DataDigest is the digest of the whole data section, if recorded.
	DataDigest digest.Digest `cbor:"data_digest,omitempty"`
}

// Encode serializes m in its wire format.
func (m *Manifest) Encode() ([]byte, error) {
	b, err := codec.Marshal(m)
	if err != nil {
		return nil, serializeError(err)
	}
	return b, nil
}

// DecodeManifest parses a manifest section payload.
func DecodeManifest(b []byte) (*Manifest, error) {
	var m Manifest
	if err := codec.Unmarshal(b, &m); err != nil {
		return nil, deserializeError(err)
	}
	if m.AssetRanges == nil {
		m.AssetRanges = map[ID]Range{}
	}
	return &m, nil
}

// Location is where a merged asset lives in the module buffer.
type Location struct {
	// Range is absolute within the module buffer.
	Range Range

	// Compression applied to the record.
	Compression Compression

	// Embedding is the UUID of the embedding that defined the asset.
	Embedding uuid.UUID
}

// GlobalManifest is the merged index of every embedding in a module.
type GlobalManifest struct {
	locations map[ID]Location
}

// NewGlobalManifest returns an empty manifest.
func NewGlobalManifest() *GlobalManifest {
	return &GlobalManifest{locations: make(map[ID]Location)}
}

// Set records loc for id, replacing any previous location.
func (m *GlobalManifest) Set(id ID, loc Location) {
	m.locations[id] = loc
}

// Lookup returns the location of id.
func (m *GlobalManifest) Lookup(id ID) (Location, bool) {
	loc, ok := m.locations[id]
	return loc, ok
}

// Len returns the number of assets.
func (m *GlobalManifest) Len() int {
	return len(m.locations)
}

// IDs returns the asset IDs in ascending order.
func (m *GlobalManifest) IDs() iter.Seq[ID] {
	return slices.Values(slices.SortedFunc(maps.Keys(m.locations), ID.Compare))
}

// All returns every asset and its location in ascending ID order.
func (m *GlobalManifest) All() iter.Seq2[ID, Location] {
	return func(yield func(ID, Location) bool) {
		for id := range m.IDs() {
			if !yield(id, m.locations[id]) {
				return
			}
		}
	}
}
