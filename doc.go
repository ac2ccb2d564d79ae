// Package wasset embeds typed asset records into WebAssembly custom sections
// and loads them back without instantiating the module.
//
// An embedding consists of two custom sections sharing one UUID:
//   - Manifest section (__wasset_manifest:<uuid>): CBOR map from asset ID to
//     a byte range within the data section
//   - Data section (__wasset_data:<uuid>): concatenated CBOR asset records
//
// A module may carry any number of embeddings, including embeddings inside
// nested core modules and components.
//
// # Encoding
//
// Encode walks a directory and hands each file to an [Encoder], which turns
// it into a record or skips it:
//
//	assets, err := wasset.Encode[example.Asset]("./assets", example.NewEncoder())
//	if err != nil {
//	    return err
//	}
//	module, _, err = wasset.Embed(module, assets)
//
// Each directory may contain a Wasset.toml file whose tables carry per-file
// metadata, keyed by file name without extension.
//
// # Loading
//
// Parse scans a module once, merges every embedding's manifest into a single
// index of absolute byte ranges, and loads records on demand:
//
//	p, err := wasset.Parse[example.Asset](module)
//	if err != nil {
//	    return err
//	}
//	for entry, err := range p.All() {
//	    ...
//	}
//
// A Parser aliases the module buffer. The buffer must not be modified while
// the Parser, or any [Item] obtained from it, is in use.
//
// # Stripping
//
// Strip returns a copy of a module with every asset section removed,
// including those in nested modules. All other sections are copied verbatim.
package wasset
