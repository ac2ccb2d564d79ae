package wasset

import "github.com/meigma/wasset/internal/metadata"

// Table is the parsed metadata for one file.
type Table = metadata.Table

// Encoder turns a file into an asset record.
//
// Encode receives the file extension without the leading dot (empty if the
// file has none), the file's metadata table (empty if none is configured) and
// the file contents. It returns ok == false to skip the file.
type Encoder[A any] interface {
	Encode(extension string, meta Table, data []byte) (asset A, ok bool, err error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc[A any] func(extension string, meta Table, data []byte) (A, bool, error)

// Encode calls f.
func (f EncoderFunc[A]) Encode(extension string, meta Table, data []byte) (A, bool, error) {
	return f(extension, meta, data)
}

// Extensions is an Encoder with a fixed set of recognized extensions. Files
// with any other extension are skipped.
type Extensions[A any] map[string]func(meta Table, data []byte) (A, error)

// Encode dispatches to the handler registered for extension.
func (e Extensions[A]) Encode(extension string, meta Table, data []byte) (A, bool, error) {
	var zero A
	h, ok := e[extension]
	if !ok {
		return zero, false, nil
	}
	asset, err := h(meta, data)
	if err != nil {
		return zero, false, err
	}
	return asset, true, nil
}
