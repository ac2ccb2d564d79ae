package wasm

import (
	"fmt"
	"math"
)

// AppendSection appends a section with the given id and payload to dst.
func AppendSection(dst []byte, id byte, payload []byte) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: section payload of %d bytes exceeds u32", ErrMalformed, len(payload))
	}
	dst = append(dst, id)
	dst = AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...), nil
}

// AppendCustomSection appends a custom section named name holding data.
// It returns the absolute offset of data within the returned slice.
func AppendCustomSection(dst []byte, name string, data []byte) ([]byte, int, error) {
	nameLen := AppendUint32(nil, uint32(len(name)))
	size := uint64(len(nameLen)) + uint64(len(name)) + uint64(len(data))
	if uint64(len(name)) > math.MaxUint32 || size > math.MaxUint32 {
		return nil, 0, fmt.Errorf("%w: custom section %q exceeds u32", ErrMalformed, name)
	}
	dst = append(dst, SectionCustom)
	dst = AppendUint32(dst, uint32(size))
	dst = append(dst, nameLen...)
	dst = append(dst, name...)
	offset := len(dst)
	return append(dst, data...), offset, nil
}
