// Package compress implements the optional zstd compression applied to
// serialized asset records.
package compress

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ErrDecompression is returned when a record cannot be decompressed.
var ErrDecompression = errors.New("decompression failed")

// Compression identifies the compression algorithm applied to the records of
// one embedding.
type Compression uint8

const (
	None Compression = iota
	Zstd
)

// String returns the human-readable name of the compression algorithm.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// Parse returns the Compression named s.
func Parse(s string) (Compression, error) {
	switch s {
	case "", "none":
		return None, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, fmt.Errorf("unknown compression %q", s)
	}
}

// Encoder compresses records. The zero value and a None encoder copy records
// through unchanged.
type Encoder struct {
	c   Compression
	enc *zstd.Encoder
}

// NewEncoder returns an encoder for c.
func NewEncoder(c Compression) (*Encoder, error) {
	switch c {
	case None:
		return &Encoder{}, nil
	case Zstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithLowerEncoderMem(true))
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		return &Encoder{c: c, enc: enc}, nil
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}
}

// Compression returns the algorithm used by Append.
func (e *Encoder) Compression() Compression {
	return e.c
}

// Append appends the compressed form of src to dst.
func (e *Encoder) Append(dst, src []byte) []byte {
	if e.enc == nil {
		return append(dst, src...)
	}
	return e.enc.EncodeAll(src, dst)
}

// Close releases encoder resources.
func (e *Encoder) Close() error {
	if e.enc == nil {
		return nil
	}
	return e.enc.Close()
}

// Decoder decompresses records. The zstd decoder is created on first use.
type Decoder struct {
	maxMemory uint64
	dec       *zstd.Decoder
}

// NewDecoder returns a decoder. If maxMemory is 0, no memory limit is applied.
func NewDecoder(maxMemory uint64) *Decoder {
	return &Decoder{maxMemory: maxMemory}
}

// Decode returns the decompressed form of src. For None, src is returned
// as is and aliases the input.
func (d *Decoder) Decode(c Compression, src []byte) ([]byte, error) {
	switch c {
	case None:
		return src, nil
	case Zstd:
		if d.dec == nil {
			opts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
			if d.maxMemory != 0 {
				opts = append(opts, zstd.WithDecoderMaxMemory(d.maxMemory))
			}
			dec, err := zstd.NewReader(nil, opts...)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrDecompression, err)
			}
			d.dec = dec
		}
		out, err := d.dec.DecodeAll(src, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecompression, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrDecompression, c)
	}
}

// Close releases decoder resources.
func (d *Decoder) Close() {
	if d.dec != nil {
		d.dec.Close()
		d.dec = nil
	}
}
