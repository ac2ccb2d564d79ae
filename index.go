package wasset

import (
	"iter"

	"github.com/meigma/wasset/internal/index"
)

// Index resolves asset paths to IDs. It is built from a Hierarchy and is
// meant for tooling that refers to assets by name, such as code generators.
type Index struct {
	idx *index.Index
}

// Index serializes the hierarchy as a FlatBuffers path index. Paths have the
// form described by Paths.
func (h *Hierarchy) Index() []byte {
	var entries []index.Entry
	for p, id := range h.Paths() {
		entries = append(entries, index.Entry{Path: p, ID: id})
	}
	return index.Build(h.Name, entries)
}

// LoadIndex parses an index produced by Hierarchy.Index. The data is retained
// and must not be modified.
func LoadIndex(data []byte) (*Index, error) {
	idx, err := index.Load(data)
	if err != nil {
		return nil, deserializeError(err)
	}
	return &Index{idx: idx}, nil
}

// Root returns the name of the encoded folder.
func (i *Index) Root() string {
	return i.idx.Root()
}

// Len returns the number of paths.
func (i *Index) Len() int {
	return i.idx.Len()
}

// Lookup returns the ID of the asset at path.
func (i *Index) Lookup(path string) (ID, bool) {
	id, ok := i.idx.Lookup(path)
	return ID(id), ok
}

// All returns every path and ID in path order.
func (i *Index) All() iter.Seq2[string, ID] {
	return i.Prefix("")
}

// Prefix returns the paths starting with prefix, in path order.
func (i *Index) Prefix(prefix string) iter.Seq2[string, ID] {
	return func(yield func(string, ID) bool) {
		for p, id := range i.idx.EntriesWithPrefix(prefix) {
			if !yield(p, ID(id)) {
				return
			}
		}
	}
}
