package wasm

import "fmt"

// maxUint32Len is the longest LEB128 encoding of a uint32.
const maxUint32Len = 5

// ReadUint32 decodes an unsigned LEB128 value from the start of b.
// It returns the value and the number of bytes consumed.
func ReadUint32(b []byte) (uint32, int, error) {
	var result uint32
	var shift uint
	for i := 0; i < maxUint32Len; i++ {
		if i >= len(b) {
			return 0, 0, fmt.Errorf("%w: truncated LEB128 value", ErrMalformed)
		}
		c := b[i]
		if i == maxUint32Len-1 && c&0xf0 != 0 {
			return 0, 0, fmt.Errorf("%w: LEB128 value overflows u32", ErrMalformed)
		}
		result |= uint32(c&0x7f) << shift
		if c&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, fmt.Errorf("%w: LEB128 value overflows u32", ErrMalformed)
}

// AppendUint32 appends the minimal unsigned LEB128 encoding of v to dst.
func AppendUint32(dst []byte, v uint32) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(dst, c)
		}
		dst = append(dst, c|0x80)
	}
}
