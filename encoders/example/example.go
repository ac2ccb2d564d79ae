// Package example provides a small asset schema and encoder: text files
// become Text assets and .bin files become Binary assets.
//
// A text file's metadata may set "append" to a string that is appended to
// its contents:
//
//	[greeting]
//	append = "!"
package example

import (
	"fmt"
	"strings"

	"github.com/meigma/wasset"
)

// Kind tells which field of an Asset is set.
type Kind uint8

const (
	KindBinary Kind = iota
	KindText
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Asset is either a text or a binary payload.
type Asset struct {
	Kind   Kind   `cbor:"kind"`
	Text   string `cbor:"text,omitempty"`
	Binary []byte `cbor:"binary,omitempty"`
}

// Text returns a text asset.
func Text(s string) Asset {
	return Asset{Kind: KindText, Text: s}
}

// Binary returns a binary asset.
func Binary(b []byte) Asset {
	return Asset{Kind: KindBinary, Binary: b}
}

// Bytes returns the payload of a regardless of kind.
func (a Asset) Bytes() []byte {
	if a.Kind == KindText {
		return []byte(a.Text)
	}
	return a.Binary
}

// String formats a for display.
func (a Asset) String() string {
	if a.Kind == KindText {
		return fmt.Sprintf("Text(%q)", a.Text)
	}
	return fmt.Sprintf("Binary(%v)", a.Binary)
}

// NewEncoder returns the encoder for txt and bin files.
func NewEncoder() wasset.Extensions[Asset] {
	return wasset.Extensions[Asset]{
		"txt": encodeText,
		"bin": encodeBinary,
	}
}

func encodeText(meta wasset.Table, data []byte) (Asset, error) {
	text := strings.ToValidUTF8(string(data), "�")
	switch v := meta["append"].(type) {
	case nil:
	case string:
		text += v
	default:
		return Asset{}, fmt.Errorf("unexpected metadata value %v for \"append\"", v)
	}
	return Text(text), nil
}

func encodeBinary(_ wasset.Table, data []byte) (Asset, error) {
	return Binary(data), nil
}
