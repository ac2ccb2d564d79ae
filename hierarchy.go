package wasset

import (
	"iter"
	"maps"
	"path"
	"slices"
)

// EncodedAsset names one encoded asset.
type EncodedAsset struct {
	// Name is the file name without its extension.
	Name string
	ID   ID
}

// Hierarchy mirrors the encoded directory tree. It is descriptive only and is
// not embedded in the module.
type Hierarchy struct {
	// Name is the directory name.
	Name     string
	Assets   []EncodedAsset
	Children map[string]*Hierarchy
}

// child returns the child node for name, creating it if needed.
func (h *Hierarchy) child(name string) *Hierarchy {
	if h.Children == nil {
		h.Children = make(map[string]*Hierarchy)
	}
	c, ok := h.Children[name]
	if !ok {
		c = &Hierarchy{Name: name}
		h.Children[name] = c
	}
	return c
}

// Len returns the number of assets in h and all of its descendants.
func (h *Hierarchy) Len() int {
	n := len(h.Assets)
	for _, c := range h.Children {
		n += c.Len()
	}
	return n
}

// Paths returns every asset keyed by its slash-separated path from the root,
// including the root's own name (for example "assets/sub/b"). Children are
// visited in name order after the node's own assets.
func (h *Hierarchy) Paths() iter.Seq2[string, ID] {
	return func(yield func(string, ID) bool) {
		h.walk(h.Name, yield)
	}
}

func (h *Hierarchy) walk(prefix string, yield func(string, ID) bool) bool {
	for _, a := range h.Assets {
		if !yield(path.Join(prefix, a.Name), a.ID) {
			return false
		}
	}
	for _, name := range slices.Sorted(maps.Keys(h.Children)) {
		if !h.Children[name].walk(path.Join(prefix, name), yield) {
			return false
		}
	}
	return true
}
