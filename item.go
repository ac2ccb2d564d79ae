package wasset

import (
	"github.com/meigma/wasset/internal/codec"
	"github.com/meigma/wasset/internal/compress"
)

// Item is the stored form of one asset record of type A. Decoding is
// deferred until Decode is called.
//
// The bytes alias the module buffer the Item was loaded from.
type Item[A any] struct {
	data        []byte
	compression Compression
	dec         *compress.Decoder
}

// ItemFromBytes wraps an uncompressed serialized record.
func ItemFromBytes[A any](b []byte) Item[A] {
	return Item[A]{data: b}
}

// Bytes returns the stored bytes, compressed if Compression is not
// CompressionNone. The slice must be treated as immutable.
func (it Item[A]) Bytes() []byte {
	return it.data
}

// Len returns the number of stored bytes.
func (it Item[A]) Len() int {
	return len(it.data)
}

// Compression returns the compression applied to the stored bytes.
func (it Item[A]) Compression() Compression {
	return it.compression
}

// Decode deserializes the record.
func (it Item[A]) Decode() (A, error) {
	var out A
	raw := it.data
	if it.compression != CompressionNone {
		dec := it.dec
		if dec == nil {
			dec = compress.NewDecoder(0)
			defer dec.Close()
		}
		var err error
		raw, err = dec.Decode(it.compression, it.data)
		if err != nil {
			return out, deserializeError(err)
		}
	}
	if err := codec.Unmarshal(raw, &out); err != nil {
		var zero A
		return zero, deserializeError(err)
	}
	return out, nil
}
