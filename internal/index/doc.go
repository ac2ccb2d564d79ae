//go:generate flatc --go --go-namespace fb -o .. ../../schema/index.fbs

// Package index builds and reads the FlatBuffers hierarchy index.
//
// The index maps slash-separated asset paths (root/sub/name) to asset IDs.
// Entries are sorted by path, enabling O(log n) lookups and prefix scans.
// Tooling uses it to refer to assets by name without re-encoding the folder.
package index
