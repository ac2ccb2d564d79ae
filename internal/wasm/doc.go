// Package wasm provides a minimal streaming reader and writer for the
// WebAssembly binary section framing.
//
// The reader walks the top-level section stream of a core module or a
// component and descends into nested core modules and components. It reports
// each step as an [Event]: a header (start of an outer or nested module), a
// leaf section, or an end. Section payloads are never decoded; callers that
// need custom section names use [Section.Custom].
//
// Nothing in this package validates the semantics of a module. It only checks
// that the framing (magic, version, section ids and LEB128 sizes) is well
// formed and that every section lies inside its enclosing module.
//
// All returned slices alias the input buffer.
package wasm
