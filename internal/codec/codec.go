// Package codec provides the CBOR configuration shared by manifests and
// asset records.
//
// Manifests and records are encoded with Core Deterministic Encoding
// (RFC 8949 §4.2): struct fields are keyed by name, map keys are sorted and
// integers use their smallest form. The same logical value always produces
// the same bytes. Decoding ignores unknown fields so that newer writers can
// add fields without breaking older readers.
package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Metadata tables and other any-typed values decode with string keys.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes exactly one CBOR data item from data into v. Trailing
// bytes after the item are an error, so a record's byte range must cover it
// exactly.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Append encodes v and appends it to dst.
func Append(dst []byte, v any) ([]byte, error) {
	b, err := encMode.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(dst, b...), nil
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
