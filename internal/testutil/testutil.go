// Package testutil builds WebAssembly fixtures for tests.
package testutil

import (
	"testing"

	"github.com/meigma/wasset/internal/wasm"
)

// Section is a section to place in a fixture.
type Section struct {
	ID      byte
	Payload []byte
}

// Custom returns a custom section fixture.
func Custom(tb testing.TB, name string, data []byte) Section {
	tb.Helper()
	payload := wasm.AppendUint32(nil, uint32(len(name)))
	payload = append(payload, name...)
	payload = append(payload, data...)
	return Section{ID: wasm.SectionCustom, Payload: payload}
}

// CoreModule returns a component section embedding module.
func CoreModule(module []byte) Section {
	return Section{ID: wasm.SectionCoreModule, Payload: module}
}

// Component returns a component section embedding a nested component.
func Component(component []byte) Section {
	return Section{ID: wasm.SectionComponent, Payload: component}
}

// Type section declaring one `func() -> ()` type.
var typeSection = Section{ID: 1, Payload: []byte{0x01, 0x60, 0x00, 0x00}}

// Function section declaring one function of type 0.
var functionSection = Section{ID: 3, Payload: []byte{0x01, 0x00}}

// Code section with one empty body.
var codeSection = Section{ID: wasm.SectionCode, Payload: []byte{0x01, 0x02, 0x00, 0x0b}}

// BuildModule returns a core module holding sections in order.
func BuildModule(tb testing.TB, sections ...Section) []byte {
	tb.Helper()
	return build(tb, wasm.ModuleHeader, sections)
}

// BuildComponent returns a component holding sections in order.
func BuildComponent(tb testing.TB, sections ...Section) []byte {
	tb.Helper()
	return build(tb, wasm.ComponentHeader, sections)
}

// MinimalModule returns a core module with one empty function followed by
// extra.
func MinimalModule(tb testing.TB, extra ...Section) []byte {
	tb.Helper()
	sections := append([]Section{typeSection, functionSection, codeSection}, extra...)
	return BuildModule(tb, sections...)
}

func build(tb testing.TB, header [wasm.HeaderSize]byte, sections []Section) []byte {
	tb.Helper()
	out := append([]byte(nil), header[:]...)
	for _, s := range sections {
		var err error
		out, err = wasm.AppendSection(out, s.ID, s.Payload)
		if err != nil {
			tb.Fatalf("append section %d: %v", s.ID, err)
		}
	}
	return out
}
