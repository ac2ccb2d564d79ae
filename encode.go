package wasset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/wasset/internal/codec"
	"github.com/meigma/wasset/internal/compress"
	"github.com/meigma/wasset/internal/metadata"
	"github.com/meigma/wasset/internal/sizing"
)

// EncodedAssets is the output of one encode: everything needed to add one
// embedding to a module.
type EncodedAssets struct {
	// Data is the concatenation of every serialized record.
	Data []byte

	// Manifest is the serialized Manifest for Data.
	Manifest []byte

	// Hierarchy is rooted at the encoded folder's name.
	Hierarchy *Hierarchy
}

// Encode builds an embedding from the contents of dir.
//
// Encode walks dir recursively and passes every regular file to enc along
// with its extension and metadata. Metadata comes from the Wasset.toml file
// in the file's directory, keyed by the file name without its extension.
// Accepted records are serialized one after another into the data blob.
// Symbolic links are not followed.
//
// Any failure aborts the whole encode; no partial result is returned.
func Encode[A any](dir string, enc Encoder[A], opts ...EncodeOption) (*EncodedAssets, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, serializeError(err)
	}
	name := filepath.Base(abs)
	if name == string(filepath.Separator) || name == "." || name == filepath.VolumeName(abs)+string(filepath.Separator) {
		return nil, serializeError(fmt.Errorf("folder %q must have a name", dir))
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, serializeError(err)
	}
	defer root.Close()

	return EncodeFS(root.FS(), name, enc, opts...)
}

// EncodeFS is like Encode but walks fsys from its root, naming the root of
// the hierarchy name.
func EncodeFS[A any](fsys fs.FS, name string, enc Encoder[A], opts ...EncodeOption) (*EncodedAssets, error) {
	if name == "" {
		return nil, serializeError(errors.New("folder must have a name"))
	}

	cfg := encodeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxFiles == 0 {
		cfg.maxFiles = DefaultMaxFiles
	}
	if cfg.metadataFile == "" {
		cfg.metadataFile = DefaultMetadataFile
	}

	comp, err := compress.NewEncoder(cfg.compression)
	if err != nil {
		return nil, serializeError(err)
	}
	defer comp.Close()

	op := &encoding[A]{
		cfg:      &cfg,
		enc:      enc,
		comp:     comp,
		manifest: Manifest{AssetRanges: make(map[ID]Range), Compression: cfg.compression},
	}
	op.log().Info("encoding assets", "folder", name, "compression", cfg.compression.String())

	root := &Hierarchy{Name: name}
	if err := op.walk(fsys, ".", root); err != nil {
		return nil, serializeError(err)
	}

	op.manifest.DataDigest = digest.FromBytes(op.data)
	manifest, err := op.manifest.Encode()
	if err != nil {
		return nil, err
	}

	op.log().Debug("assets encoded", "asset_count", len(op.manifest.AssetRanges), "data_size", len(op.data))
	return &EncodedAssets{
		Data:      op.data,
		Manifest:  manifest,
		Hierarchy: root,
	}, nil
}

// encoding is the accumulator shared by every directory of one encode.
type encoding[A any] struct {
	cfg      *encodeConfig
	enc      Encoder[A]
	comp     *compress.Encoder
	data     []byte
	manifest Manifest
}

// log returns the logger, falling back to a discard logger if nil.
func (op *encoding[A]) log() *slog.Logger {
	if op.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return op.cfg.logger
}

// walk encodes the files of dir into node and recurses into subdirectories.
func (op *encoding[A]) walk(fsys fs.FS, dir string, node *Hierarchy) error {
	meta, err := metadata.Load(fsys, path.Join(dir, op.cfg.metadataFile))
	if err != nil {
		return fmt.Errorf("metadata in %s: %w", dir, err)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, d := range entries {
		p := path.Join(dir, d.Name())
		switch {
		case d.IsDir():
			if err := op.walk(fsys, p, node.child(d.Name())); err != nil {
				return err
			}
		case d.Type()&fs.ModeSymlink != 0:
			op.log().Debug("skipped symlink", "path", p)
		case !d.Type().IsRegular():
			op.log().Debug("skipped irregular file", "path", p)
		case d.Name() == op.cfg.metadataFile:
		default:
			if err := op.encodeFile(fsys, p, d.Name(), meta, node); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeFile runs the encoder on one file and appends the resulting record.
func (op *encoding[A]) encodeFile(fsys fs.FS, p, name string, meta Table, node *Hierarchy) error {
	stem, ext := splitName(name)
	fileMeta, err := metadata.Entry(meta, stem)
	if err != nil {
		return fmt.Errorf("metadata for %s: %w", p, err)
	}

	contents, err := fs.ReadFile(fsys, p)
	if err != nil {
		return err
	}

	asset, ok, err := op.enc.Encode(ext, fileMeta, contents)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p, err)
	}
	if !ok {
		op.log().Debug("skipped file", "path", p, "extension", ext)
		return nil
	}

	if op.cfg.maxFiles > 0 && len(op.manifest.AssetRanges) >= op.cfg.maxFiles {
		return ErrTooManyFiles
	}

	id, err := NewID()
	if err != nil {
		return fmt.Errorf("generate ID for %s: %w", p, err)
	}
	record, err := codec.Marshal(asset)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", p, err)
	}

	start, err := sizing.ToUint32(len(op.data), ErrSizeOverflow)
	if err != nil {
		return err
	}
	op.data = op.comp.Append(op.data, record)
	end, err := sizing.ToUint32(len(op.data), ErrSizeOverflow)
	if err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}

	op.manifest.AssetRanges[id] = Range{Start: start, End: end}
	node.Assets = append(node.Assets, EncodedAsset{Name: stem, ID: id})
	op.log().Debug("encoded asset", "path", p, "id", id.String(), "size", end-start)
	return nil
}

// splitName splits a file name into its stem and its extension without the
// dot. Names with a single leading dot, such as ".env", have no extension.
func splitName(name string) (stem, ext string) {
	dot := path.Ext(name)
	stem = strings.TrimSuffix(name, dot)
	if stem == "" {
		return name, ""
	}
	return stem, strings.TrimPrefix(dot, ".")
}
