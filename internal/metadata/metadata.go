// Package metadata loads the per-directory metadata file consulted during
// encoding.
//
// The file is a TOML document whose top-level keys are file names without
// their extension. Each key maps to a table of encoder-specific settings:
//
//	[logo]
//	append = "!"
package metadata

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the metadata file looked up in every directory.
const DefaultFileName = "Wasset.toml"

// ErrNotTable is returned when a metadata entry exists but is not a table.
var ErrNotTable = errors.New("metadata entry is not a table")

// Table is a parsed TOML table.
type Table = map[string]any

// Load parses the metadata file at name in fsys. A missing file yields an
// empty table.
func Load(fsys fs.FS, name string) (Table, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a metadata document.
func Parse(data []byte) (Table, error) {
	t := Table{}
	if _, err := toml.Decode(string(data), &t); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return t, nil
}

// Entry returns the table for key. A missing key yields an empty table; a
// key holding anything other than a table is ErrNotTable.
func Entry(t Table, key string) (Table, error) {
	v, ok := t[key]
	if !ok {
		return Table{}, nil
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q holds %T", ErrNotTable, key, v)
	}
	return sub, nil
}
