package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	src := bytes.Repeat([]byte("asset "), 200)
	for _, c := range []Compression{None, Zstd} {
		t.Run(c.String(), func(t *testing.T) {
			t.Parallel()

			enc, err := NewEncoder(c)
			require.NoError(t, err)
			defer enc.Close()

			out := enc.Append([]byte("head"), src)
			assert.Equal(t, []byte("head"), out[:4])
			if c == Zstd {
				assert.Less(t, len(out), len(src))
			}

			dec := NewDecoder(0)
			defer dec.Close()
			got, err := dec.Decode(c, out[4:])
			require.NoError(t, err)
			assert.Equal(t, src, got)
		})
	}
}

func TestDecodeCorrupt(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(0)
	defer dec.Close()
	_, err := dec.Decode(Zstd, []byte("not zstd"))
	assert.ErrorIs(t, err, ErrDecompression)

	_, err = dec.Decode(Compression(9), nil)
	assert.ErrorIs(t, err, ErrDecompression)
}

func TestParse(t *testing.T) {
	t.Parallel()

	c, err := Parse("zstd")
	require.NoError(t, err)
	assert.Equal(t, Zstd, c)

	c, err = Parse("")
	require.NoError(t, err)
	assert.Equal(t, None, c)

	_, err = Parse("lz4")
	assert.Error(t, err)
}
