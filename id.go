package wasset

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"github.com/meigma/wasset/internal/sizing"
)

// ID identifies one asset. IDs are random (version 4) UUIDs generated at
// encode time; the zero ID is never produced.
//
// ID is comparable and may be used as a map key.
type ID uuid.UUID

// NewID returns a fresh random ID.
func NewID() (ID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return ID{}, err
	}
	return ID(u), nil
}

// IDFromBytes returns the ID with the given 16 bytes.
func IDFromBytes(b [16]byte) ID {
	return ID(b)
}

// ParseID parses the canonical hyphenated form of an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, err
	}
	return ID(u), nil
}

// String returns the canonical hyphenated form of id.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Bytes returns the raw 16 bytes of id.
func (id ID) Bytes() [16]byte {
	return id
}

// Compare orders IDs by their bytes.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

// MarshalBinary encodes id as its 16 raw bytes.
func (id ID) MarshalBinary() ([]byte, error) {
	return id[:], nil
}

// UnmarshalBinary decodes 16 raw bytes into id.
func (id *ID) UnmarshalBinary(b []byte) error {
	if len(b) != len(id) {
		return fmt.Errorf("asset ID must be %d bytes, got %d", len(id), len(b))
	}
	copy(id[:], b)
	return nil
}

// Range is a half-open byte range [Start, End).
type Range struct {
	Start uint32 `cbor:"start"`
	End   uint32 `cbor:"end"`
}

// Len returns the number of bytes in r. It is 0 for inverted ranges.
func (r Range) Len() uint32 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Within reports whether r is well formed and lies inside a buffer of n bytes.
func (r Range) Within(n int) bool {
	return sizing.InBounds(r.Start, r.End, n)
}

// Shift returns r moved forward by off. ok is false if the result overflows.
func (r Range) Shift(off uint32) (shifted Range, ok bool) {
	start, ok := sizing.AddUint32(r.Start, off)
	if !ok {
		return Range{}, false
	}
	end, ok := sizing.AddUint32(r.End, off)
	if !ok {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// String formats r as start..end.
func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}
