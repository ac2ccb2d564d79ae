package index

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/meigma/wasset/internal/fb"
)

// Version is the index format version written by Build.
const Version = 1

// idLen is the length of an asset ID.
const idLen = 16

// Entry is one path to ID mapping.
type Entry struct {
	Path string
	ID   [idLen]byte
}

// Build serializes entries under root. Entries are sorted by path; entries
// sharing a path keep their relative order.
func Build(root string, entries []Entry) []byte {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})

	builder := flatbuffers.NewBuilder(1024)

	// Build entries in reverse order (FlatBuffers requirement)
	offsets := make([]flatbuffers.UOffsetT, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		pathOffset := builder.CreateString(e.Path)
		idOffset := builder.CreateByteVector(e.ID[:])

		fb.EntryStart(builder)
		fb.EntryAddPath(builder, pathOffset)
		fb.EntryAddId(builder, idOffset)
		offsets[i] = fb.EntryEnd(builder)
	}

	fb.IndexStartEntriesVector(builder, len(offsets))
	for i := len(offsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(offsets[i])
	}
	entriesOffset := builder.EndVector(len(offsets))
	rootOffset := builder.CreateString(root)

	fb.IndexStart(builder)
	fb.IndexAddVersion(builder, Version)
	fb.IndexAddRoot(builder, rootOffset)
	fb.IndexAddEntries(builder, entriesOffset)
	builder.Finish(fb.IndexEnd(builder))

	return builder.FinishedBytes()
}

// Index provides lookups over a serialized index.
//
// The serialized bytes are retained; callers must not modify them after
// calling Load.
type Index struct {
	data []byte
	root *fb.Index
}

// Load parses a serialized index.
func Load(data []byte) (idx *Index, err error) {
	defer func() {
		if r := recover(); r != nil {
			idx = nil
			err = fmt.Errorf("index: failed to parse: %v", r)
		}
	}()
	if len(data) == 0 {
		return nil, errors.New("index: empty data")
	}

	root := fb.GetRootAsIndex(data, 0)
	if v := root.Version(); v != Version {
		return nil, fmt.Errorf("index: unsupported version %d", v)
	}
	// Touch every entry so that corrupt offsets fail here rather than in
	// a later lookup.
	var e fb.Entry
	for i := range root.EntriesLength() {
		if !root.Entries(&e, i) {
			break
		}
		if len(e.IdBytes()) != idLen {
			return nil, fmt.Errorf("index: entry %q has a malformed ID", e.Path())
		}
	}

	return &Index{data: data, root: root}, nil
}

// Version returns the format version of the index.
func (idx *Index) Version() uint32 {
	return idx.root.Version()
}

// Root returns the name of the encoded folder.
func (idx *Index) Root() string {
	return string(idx.root.Root())
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return idx.root.EntriesLength()
}

// Lookup returns the ID stored for path.
func (idx *Index) Lookup(path string) ([idLen]byte, bool) {
	n := idx.root.EntriesLength()
	key := []byte(path)
	i := sort.Search(n, func(i int) bool {
		var e fb.Entry
		if !idx.root.Entries(&e, i) {
			return false
		}
		return bytes.Compare(e.Path(), key) >= 0
	})
	if i == n {
		return [idLen]byte{}, false
	}
	var e fb.Entry
	if !idx.root.Entries(&e, i) || !bytes.Equal(e.Path(), key) {
		return [idLen]byte{}, false
	}
	return toID(e.IdBytes()), true
}

// Entries returns every entry in path order.
func (idx *Index) Entries() iter.Seq2[string, [idLen]byte] {
	return idx.EntriesWithPrefix("")
}

// EntriesWithPrefix returns the entries whose path starts with prefix, in
// path order.
func (idx *Index) EntriesWithPrefix(prefix string) iter.Seq2[string, [idLen]byte] {
	return func(yield func(string, [idLen]byte) bool) {
		n := idx.root.EntriesLength()
		prefixBytes := []byte(prefix)

		start := sort.Search(n, func(i int) bool {
			var e fb.Entry
			if !idx.root.Entries(&e, i) {
				return false
			}
			return bytes.Compare(e.Path(), prefixBytes) >= 0
		})

		var e fb.Entry
		for i := start; i < n; i++ {
			if !idx.root.Entries(&e, i) {
				return
			}
			p := e.Path()
			if !bytes.HasPrefix(p, prefixBytes) {
				return
			}
			if !yield(string(p), toID(e.IdBytes())) {
				return
			}
		}
	}
}

func toID(b []byte) [idLen]byte {
	var id [idLen]byte
	copy(id[:], b)
	return id
}
