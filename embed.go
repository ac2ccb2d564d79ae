package wasset

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/meigma/wasset/internal/wasm"
)

// Embed returns a copy of module with assets appended as a new embedding: a
// manifest section followed by a data section, both named after a fresh
// embedding UUID. Existing sections are left untouched.
func Embed(module []byte, assets *EncodedAssets) ([]byte, uuid.UUID, error) {
	if _, err := wasm.ParseHeader(module); err != nil {
		return nil, uuid.UUID{}, serializeError(fmt.Errorf("embed: %w", err))
	}
	embedding, err := uuid.NewRandom()
	if err != nil {
		return nil, uuid.UUID{}, serializeError(err)
	}

	out := make([]byte, 0, len(module)+len(assets.Manifest)+len(assets.Data)+128)
	out = append(out, module...)
	out, _, err = wasm.AppendCustomSection(out, ManifestSectionName(embedding), assets.Manifest)
	if err != nil {
		return nil, uuid.UUID{}, serializeError(err)
	}
	out, dataOffset, err := wasm.AppendCustomSection(out, DataSectionName(embedding), assets.Data)
	if err != nil {
		return nil, uuid.UUID{}, serializeError(err)
	}
	if uint64(dataOffset)+uint64(len(assets.Data)) > 1<<32 {
		return nil, uuid.UUID{}, serializeError(fmt.Errorf("%w: data section ends beyond 4 GiB", ErrSizeOverflow))
	}
	return out, embedding, nil
}
