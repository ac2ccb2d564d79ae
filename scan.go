package wasset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/meigma/wasset/internal/sizing"
	"github.com/meigma/wasset/internal/wasm"
)

// Custom section name prefixes. Both are followed by the canonical
// 36-character form of the embedding UUID.
const (
	ManifestSectionPrefix = "__wasset_manifest:"
	DataSectionPrefix     = "__wasset_data:"
)

// canonicalUUIDLen is the length of the hyphenated UUID form.
const canonicalUUIDLen = 36

// ManifestSectionName returns the manifest section name for an embedding.
func ManifestSectionName(embedding uuid.UUID) string {
	return ManifestSectionPrefix + embedding.String()
}

// DataSectionName returns the data section name for an embedding.
func DataSectionName(embedding uuid.UUID) string {
	return DataSectionPrefix + embedding.String()
}

// isAssetSection reports whether a custom section name belongs to an embedding.
func isAssetSection(name string) bool {
	return strings.HasPrefix(name, ManifestSectionPrefix) || strings.HasPrefix(name, DataSectionPrefix)
}

// Offsets is what a scan records for one embedding.
type Offsets struct {
	// Manifest is the raw manifest section payload.
	Manifest    []byte
	HasManifest bool

	// DataOffset is the absolute offset of the data payload in the module.
	DataOffset uint32
	// Data is the data section payload.
	Data    []byte
	HasData bool
}

// Scan makes one forward pass over module and records, for every embedding,
// its manifest bytes and the absolute offset of its data. Nested core modules
// and components are scanned too. Code sections are skipped without being
// read.
//
// The returned slices alias module.
func Scan(module []byte) (map[uuid.UUID]*Offsets, error) {
	offsets := make(map[uuid.UUID]*Offsets)
	r := wasm.NewReader(module)
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return offsets, nil
		}
		if err != nil {
			return nil, deserializeError(err)
		}
		if ev.Kind != wasm.EventSection || ev.Section.ID != wasm.SectionCustom {
			continue
		}
		if err := scanCustom(ev.Section, offsets); err != nil {
			return nil, deserializeError(err)
		}
	}
}

func scanCustom(sec wasm.Section, offsets map[uuid.UUID]*Offsets) error {
	custom, err := sec.Custom()
	if err != nil {
		return err
	}

	switch {
	case strings.HasPrefix(custom.Name, ManifestSectionPrefix):
		id, err := parseEmbeddingID(custom.Name, ManifestSectionPrefix)
		if err != nil {
			return err
		}
		o := entry(offsets, id)
		o.Manifest = custom.Data
		o.HasManifest = true

	case strings.HasPrefix(custom.Name, DataSectionPrefix):
		id, err := parseEmbeddingID(custom.Name, DataSectionPrefix)
		if err != nil {
			return err
		}
		off, err := sizing.ToUint32(custom.DataOffset, ErrSizeOverflow)
		if err != nil {
			return fmt.Errorf("data section %s: %w", id, err)
		}
		o := entry(offsets, id)
		o.DataOffset = off
		o.Data = custom.Data
		o.HasData = true
	}
	return nil
}

func entry(offsets map[uuid.UUID]*Offsets, id uuid.UUID) *Offsets {
	o, ok := offsets[id]
	if !ok {
		o = &Offsets{}
		offsets[id] = o
	}
	return o
}

func parseEmbeddingID(name, prefix string) (uuid.UUID, error) {
	s := name[len(prefix):]
	if len(s) != canonicalUUIDLen {
		return uuid.UUID{}, fmt.Errorf("%w: section %q does not end in a canonical UUID", ErrMalformedModule, name)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: section %q: %w", ErrMalformedModule, name, err)
	}
	return id, nil
}
