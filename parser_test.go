package wasset_test

import (
	"slices"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/wasset"
	"github.com/meigma/wasset/encoders/example"
	"github.com/meigma/wasset/internal/testutil"
)

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	module, enc := embeddedModule(t)
	ids := paths(enc.Hierarchy)

	p, err := wasset.Parse[example.Asset](module)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, 2, p.Len())

	a, ok, err := p.Load(ids["assets/a"])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, example.Text("hi!"), a)

	b, ok, err := p.Load(ids["assets/sub/b"])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, example.Binary([]byte{1, 2, 3}), b)

	t.Run("unknown ID", func(t *testing.T) {
		id, err := wasset.NewID()
		require.NoError(t, err)
		_, ok, err := p.Load(id)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = p.LoadRaw(id)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ranges lie in module", func(t *testing.T) {
		for id, loc := range p.Manifest().All() {
			assert.True(t, loc.Range.Within(len(module)), "asset %s", id)
		}
	})

	t.Run("all", func(t *testing.T) {
		var got []wasset.ID
		for e, err := range p.All() {
			require.NoError(t, err)
			got = append(got, e.ID)
			switch e.ID {
			case ids["assets/a"]:
				assert.Equal(t, example.Text("hi!"), e.Asset)
			case ids["assets/sub/b"]:
				assert.Equal(t, example.Binary([]byte{1, 2, 3}), e.Asset)
			default:
				t.Errorf("unexpected asset %s", e.ID)
			}
		}
		assert.Len(t, got, 2)
		assert.True(t, slices.IsSortedFunc(got, wasset.ID.Compare))
		assert.Equal(t, got, slices.Collect(p.IDs()))
	})

	t.Run("all stops early", func(t *testing.T) {
		n := 0
		for range p.All() {
			n++
			break
		}
		assert.Equal(t, 1, n)
	})

	t.Run("raw item", func(t *testing.T) {
		item, ok, err := p.LoadRaw(ids["assets/a"])
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, wasset.CompressionNone, item.Compression())
		assert.Equal(t, len(item.Bytes()), item.Len())

		copied := wasset.ItemFromBytes[example.Asset](slices.Clone(item.Bytes()))
		got, err := copied.Decode()
		require.NoError(t, err)
		assert.Equal(t, example.Text("hi!"), got)
	})
}

func TestParse_Compressed(t *testing.T) {
	t.Parallel()

	module, enc := embeddedModule(t, wasset.EncodeWithCompression(wasset.CompressionZstd))
	ids := paths(enc.Hierarchy)

	m, err := wasset.DecodeManifest(enc.Manifest)
	require.NoError(t, err)
	assert.Equal(t, wasset.CompressionZstd, m.Compression)

	p, err := wasset.Parse[example.Asset](module, wasset.ParseWithMaxDecoderMemory(1<<20))
	require.NoError(t, err)
	defer p.Close()

	a, ok, err := p.Load(ids["assets/a"])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, example.Text("hi!"), a)

	item, ok, err := p.LoadRaw(ids["assets/sub/b"])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, wasset.CompressionZstd, item.Compression())

	b, err := item.Decode()
	require.NoError(t, err)
	assert.Equal(t, example.Binary([]byte{1, 2, 3}), b)
}

func TestParse_NoEmbeddings(t *testing.T) {
	t.Parallel()

	p, err := wasset.Parse[example.Asset](testutil.MinimalModule(t))
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, 0, p.Len())
}

func TestParse_EmptyEmbedding(t *testing.T) {
	t.Parallel()

	enc := encode(t, fstest.MapFS{"x.png": {Data: []byte{1}}}, "assets")
	module := embed(t, testutil.MinimalModule(t), enc)

	p, err := wasset.Parse[example.Asset](module)
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, 0, p.Len())
}

func TestParse_NestedComponent(t *testing.T) {
	t.Parallel()

	inner := encode(t, assetsFS(), "assets")
	outer := encode(t, fstest.MapFS{"c.txt": {Data: []byte("yo")}}, "more")

	core := embed(t, testutil.MinimalModule(t), inner)
	component := testutil.BuildComponent(t, testutil.CoreModule(core))
	module := embed(t, component, outer)

	p, err := wasset.Parse[example.Asset](module)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, 3, p.Len())

	want := map[string]example.Asset{
		"assets/a":     example.Text("hi!"),
		"assets/sub/b": example.Binary([]byte{1, 2, 3}),
		"more/c":       example.Text("yo"),
	}
	ids := paths(inner.Hierarchy)
	for path, id := range paths(outer.Hierarchy) {
		ids[path] = id
	}
	for path, asset := range want {
		got, ok, err := p.Load(ids[path])
		require.NoError(t, err, path)
		require.True(t, ok, path)
		assert.Equal(t, asset, got, path)
	}

	t.Run("doubly nested", func(t *testing.T) {
		wrapped := testutil.BuildComponent(t, testutil.Component(module))
		p, err := wasset.Parse[example.Asset](wrapped)
		require.NoError(t, err)
		defer p.Close()

		got, ok, err := p.Load(ids["assets/a"])
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, example.Text("hi!"), got)
	})
}

func TestParse_MultipleEmbeddings(t *testing.T) {
	t.Parallel()

	first := encode(t, assetsFS(), "assets")
	second := encode(t, fstest.MapFS{"c.txt": {Data: []byte("yo")}}, "more")
	module := embed(t, embed(t, testutil.MinimalModule(t), first), second)

	offsets, err := wasset.Scan(module)
	require.NoError(t, err)
	assert.Len(t, offsets, 2)

	p, err := wasset.Parse[example.Asset](module)
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, 3, p.Len())

	got, ok, err := p.Load(paths(second.Hierarchy)["more/c"])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, example.Text("yo"), got)
}

func TestParse_Duplicates(t *testing.T) {
	t.Parallel()

	enc := encode(t, assetsFS(), "assets")
	module := embed(t, embed(t, testutil.MinimalModule(t), enc), enc)

	t.Run("last embedding wins", func(t *testing.T) {
		t.Parallel()
		p, err := wasset.Parse[example.Asset](module)
		require.NoError(t, err)
		defer p.Close()

		assert.Equal(t, 2, p.Len())
		got, ok, err := p.Load(paths(enc.Hierarchy)["assets/a"])
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, example.Text("hi!"), got)
	})

	t.Run("rejected", func(t *testing.T) {
		t.Parallel()
		_, err := wasset.Parse[example.Asset](module, wasset.ParseWithRejectDuplicates(true))
		assert.ErrorIs(t, err, wasset.ErrDeserialize)
		assert.ErrorIs(t, err, wasset.ErrDuplicateID)
	})
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	enc := encode(t, assetsFS(), "assets")
	embedding := uuid.New()

	tampered := slices.Clone(enc.Data)
	tampered[len(tampered)-1] ^= 0xff

	tests := []struct {
		name    string
		module  []byte
		opts    []wasset.ParseOption
		wantErr error
	}{
		{
			name:    "not a module",
			module:  []byte("not wasm"),
			wantErr: wasset.ErrMalformedModule,
		},
		{
			name: "truncated section",
			module: func() []byte {
				m := testutil.MinimalModule(t)
				return append(m, 0x00, 0x10, 0x01)
			}(),
			wantErr: wasset.ErrMalformedModule,
		},
		{
			name: "missing data",
			module: testutil.MinimalModule(t,
				testutil.Custom(t, wasset.ManifestSectionName(embedding), enc.Manifest)),
			wantErr: wasset.ErrMissingData,
		},
		{
			name: "missing manifest",
			module: testutil.MinimalModule(t,
				testutil.Custom(t, wasset.DataSectionName(embedding), enc.Data)),
			wantErr: wasset.ErrMissingManifest,
		},
		{
			name: "invalid embedding UUID",
			module: testutil.MinimalModule(t,
				testutil.Custom(t, wasset.DataSectionPrefix+"not-a-uuid", enc.Data)),
			wantErr: wasset.ErrMalformedModule,
		},
		{
			name: "non-canonical embedding UUID",
			module: testutil.MinimalModule(t,
				testutil.Custom(t, wasset.ManifestSectionPrefix+"{"+embedding.String()+"}", enc.Manifest)),
			wantErr: wasset.ErrMalformedModule,
		},
		{
			name: "invalid manifest",
			module: testutil.MinimalModule(t,
				testutil.Custom(t, wasset.ManifestSectionName(embedding), []byte{0xff, 0x00}),
				testutil.Custom(t, wasset.DataSectionName(embedding), enc.Data)),
			wantErr: wasset.ErrDeserialize,
		},
		{
			name: "range exceeds data section",
			module: testutil.MinimalModule(t,
				testutil.Custom(t, wasset.ManifestSectionName(embedding), enc.Manifest),
				testutil.Custom(t, wasset.DataSectionName(embedding), enc.Data[:1])),
			wantErr: wasset.ErrOutOfRange,
		},
		{
			name: "digest mismatch",
			module: testutil.MinimalModule(t,
				testutil.Custom(t, wasset.ManifestSectionName(embedding), enc.Manifest),
				testutil.Custom(t, wasset.DataSectionName(embedding), tampered)),
			opts:    []wasset.ParseOption{wasset.ParseWithVerify(true)},
			wantErr: wasset.ErrDigestMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := wasset.Parse[example.Asset](tt.module, tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, wasset.ErrDeserialize)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_VerifyAcceptsIntactData(t *testing.T) {
	t.Parallel()

	module, _ := embeddedModule(t)
	p, err := wasset.Parse[example.Asset](module, wasset.ParseWithVerify(true))
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, 2, p.Len())
}

func TestParser_LoadOutOfRange(t *testing.T) {
	t.Parallel()

	id, err := wasset.NewID()
	require.NoError(t, err)

	module := testutil.MinimalModule(t)
	manifest := wasset.NewGlobalManifest()
	manifest.Set(id, wasset.Location{Range: wasset.Range{Start: 0, End: uint32(len(module)) + 1}})

	p := wasset.NewParser[example.Asset](module, manifest)
	defer p.Close()

	_, ok, err := p.Load(id)
	assert.False(t, ok)
	assert.ErrorIs(t, err, wasset.ErrDeserialize)
	assert.ErrorIs(t, err, wasset.ErrOutOfRange)

	for _, err := range p.All() {
		assert.ErrorIs(t, err, wasset.ErrOutOfRange)
	}
}

func TestParser_LoadUndecodable(t *testing.T) {
	t.Parallel()

	id, err := wasset.NewID()
	require.NoError(t, err)

	// The header bytes are not a CBOR item of the asset type.
	manifest := wasset.NewGlobalManifest()
	manifest.Set(id, wasset.Location{Range: wasset.Range{Start: 0, End: 8}})

	p := wasset.NewParser[example.Asset](testutil.MinimalModule(t), manifest)
	defer p.Close()

	_, ok, err := p.Load(id)
	assert.False(t, ok)
	assert.ErrorIs(t, err, wasset.ErrDeserialize)
}

func TestScan(t *testing.T) {
	t.Parallel()

	enc := encode(t, assetsFS(), "assets")
	module, embedding, err := wasset.Embed(testutil.MinimalModule(t), enc)
	require.NoError(t, err)

	offsets, err := wasset.Scan(module)
	require.NoError(t, err)
	require.Contains(t, offsets, embedding)

	o := offsets[embedding]
	assert.True(t, o.HasManifest)
	assert.True(t, o.HasData)
	assert.Equal(t, enc.Manifest, o.Manifest)
	assert.Equal(t, enc.Data, o.Data)
	assert.Equal(t, enc.Data, module[o.DataOffset:int(o.DataOffset)+len(enc.Data)])
}

func TestMerge(t *testing.T) {
	t.Parallel()

	enc := encode(t, assetsFS(), "assets")
	embedding := uuid.New()
	const dataOffset = 1000

	offsets := map[uuid.UUID]*wasset.Offsets{
		embedding: {
			Manifest:    enc.Manifest,
			HasManifest: true,
			DataOffset:  dataOffset,
			Data:        enc.Data,
			HasData:     true,
		},
	}
	merged, err := wasset.Merge(offsets, wasset.MergeWithVerify(true))
	require.NoError(t, err)

	m, err := wasset.DecodeManifest(enc.Manifest)
	require.NoError(t, err)
	require.Equal(t, len(m.AssetRanges), merged.Len())
	for id, r := range m.AssetRanges {
		loc, ok := merged.Lookup(id)
		require.True(t, ok)
		assert.Equal(t, r.Start+dataOffset, loc.Range.Start)
		assert.Equal(t, r.End+dataOffset, loc.Range.End)
		assert.Equal(t, embedding, loc.Embedding)
	}

	t.Run("offset overflow", func(t *testing.T) {
		t.Parallel()
		overflow := map[uuid.UUID]*wasset.Offsets{
			embedding: {
				Manifest:    enc.Manifest,
				HasManifest: true,
				DataOffset:  ^uint32(0),
				Data:        enc.Data,
				HasData:     true,
			},
		}
		_, err := wasset.Merge(overflow)
		assert.ErrorIs(t, err, wasset.ErrSizeOverflow)
	})
}

func TestEmbed_InvalidModule(t *testing.T) {
	t.Parallel()

	enc := encode(t, assetsFS(), "assets")
	_, _, err := wasset.Embed([]byte("nope"), enc)
	assert.ErrorIs(t, err, wasset.ErrSerialize)
	assert.ErrorIs(t, err, wasset.ErrMalformedModule)
}
