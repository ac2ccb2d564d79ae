package wasset

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/wasset/internal/codec"
)

func TestID(t *testing.T) {
	t.Parallel()

	id, err := NewID()
	require.NoError(t, err)
	assert.NotEqual(t, ID{}, id)

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.Equal(t, id, IDFromBytes(id.Bytes()))

	_, err = ParseID("nope")
	assert.Error(t, err)

	var bad ID
	assert.Error(t, bad.UnmarshalBinary([]byte{1, 2, 3}))
}

func TestRange(t *testing.T) {
	t.Parallel()

	r := Range{Start: 2, End: 5}
	assert.Equal(t, uint32(3), r.Len())
	assert.Equal(t, "2..5", r.String())
	assert.True(t, r.Within(5))
	assert.False(t, r.Within(4))
	assert.False(t, Range{Start: 5, End: 2}.Within(10))
	assert.Equal(t, uint32(0), Range{Start: 5, End: 2}.Len())

	shifted, ok := r.Shift(10)
	require.True(t, ok)
	assert.Equal(t, Range{Start: 12, End: 15}, shifted)

	_, ok = r.Shift(math.MaxUint32 - 3)
	assert.False(t, ok)
}

func TestManifestEncoding(t *testing.T) {
	t.Parallel()

	m := &Manifest{AssetRanges: map[ID]Range{}}
	for i := range 8 {
		var id ID
		id[0] = byte(8 - i)
		m.AssetRanges[id] = Range{Start: uint32(i * 10), End: uint32(i*10 + 10)}
	}

	first, err := m.Encode()
	require.NoError(t, err)
	second, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, first, second, "encoding must be deterministic")

	diag, err := codec.Diagnose(first)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(diag, `{"asset_ranges": {`), diag)
	assert.Contains(t, diag, `"start": 0`)
	assert.NotContains(t, diag, "compression")

	decoded, err := DecodeManifest(first)
	require.NoError(t, err)
	assert.Equal(t, m.AssetRanges, decoded.AssetRanges)

	_, err = DecodeManifest([]byte{0xa1})
	assert.ErrorIs(t, err, ErrDeserialize)
}

func TestGlobalManifestOrder(t *testing.T) {
	t.Parallel()

	m := NewGlobalManifest()
	for i := range 16 {
		var id ID
		id[0] = byte((i * 7) % 16)
		m.Set(id, Location{Range: Range{Start: uint32(i), End: uint32(i + 1)}})
	}
	ids := slices.Collect(m.IDs())
	assert.Len(t, ids, 16)
	assert.True(t, slices.IsSortedFunc(ids, ID.Compare))

	var fromAll []ID
	for id := range m.All() {
		fromAll = append(fromAll, id)
	}
	assert.Equal(t, ids, fromAll)
}
