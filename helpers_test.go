package wasset_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/meigma/wasset"
	"github.com/meigma/wasset/encoders/example"
	"github.com/meigma/wasset/internal/testutil"
)

// assetsFS is a folder with a text file carrying metadata and a binary file
// in a subdirectory.
func assetsFS() fstest.MapFS {
	return fstest.MapFS{
		"a.txt":       {Data: []byte("hi")},
		"Wasset.toml": {Data: []byte("[a]\nappend = \"!\"\n")},
		"sub/b.bin":   {Data: []byte{1, 2, 3}},
	}
}

func encode(tb testing.TB, fsys fstest.MapFS, name string, opts ...wasset.EncodeOption) *wasset.EncodedAssets {
	tb.Helper()
	enc, err := wasset.EncodeFS[example.Asset](fsys, name, example.NewEncoder(), opts...)
	require.NoError(tb, err)
	return enc
}

func embed(tb testing.TB, module []byte, enc *wasset.EncodedAssets) []byte {
	tb.Helper()
	out, _, err := wasset.Embed(module, enc)
	require.NoError(tb, err)
	return out
}

// paths maps each asset path of h to its ID.
func paths(h *wasset.Hierarchy) map[string]wasset.ID {
	out := make(map[string]wasset.ID)
	for p, id := range h.Paths() {
		out[p] = id
	}
	return out
}

// embeddedModule returns a minimal module with the assetsFS embedding.
func embeddedModule(tb testing.TB, opts ...wasset.EncodeOption) ([]byte, *wasset.EncodedAssets) {
	tb.Helper()
	enc := encode(tb, assetsFS(), "assets", opts...)
	return embed(tb, testutil.MinimalModule(tb), enc), enc
}
