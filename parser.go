package wasset

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/meigma/wasset/internal/compress"
)

// Entry is one asset produced by Parser.All.
type Entry[A any] struct {
	ID    ID
	Asset A
}

// Parser loads assets of type A from a module.
//
// A Parser aliases the module buffer passed to it; the buffer must not be
// modified while the Parser or any Item it returned is in use. A Parser is
// not safe for concurrent use.
type Parser[A any] struct {
	module   []byte
	manifest *GlobalManifest
	dec      *compress.Decoder
	logger   *slog.Logger
}

// Parse scans module and merges all of its embeddings.
func Parse[A any](module []byte, opts ...ParseOption) (*Parser[A], error) {
	cfg := parseConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	offsets, err := Scan(module)
	if err != nil {
		return nil, err
	}
	manifest, err := Merge(offsets, append(cfg.merge, MergeWithLogger(logger))...)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed module", "module_size", len(module), "embeddings", len(offsets), "assets", manifest.Len())

	return newParser[A](module, manifest, &cfg, logger), nil
}

// NewParser returns a Parser over module using an already merged manifest.
// Merge options in opts are ignored.
func NewParser[A any](module []byte, manifest *GlobalManifest, opts ...ParseOption) *Parser[A] {
	cfg := parseConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return newParser[A](module, manifest, &cfg, logger)
}

func newParser[A any](module []byte, manifest *GlobalManifest, cfg *parseConfig, logger *slog.Logger) *Parser[A] {
	return &Parser[A]{
		module:   module,
		manifest: manifest,
		dec:      compress.NewDecoder(cfg.maxDecoderMemory),
		logger:   logger,
	}
}

// Manifest returns the merged manifest.
func (p *Parser[A]) Manifest() *GlobalManifest {
	return p.manifest
}

// Len returns the number of assets.
func (p *Parser[A]) Len() int {
	return p.manifest.Len()
}

// IDs returns the IDs of every asset in the module.
func (p *Parser[A]) IDs() iter.Seq[ID] {
	return p.manifest.IDs()
}

// Load loads and decodes the asset with the given ID. If the module holds no
// such asset, ok is false and err is nil.
func (p *Parser[A]) Load(id ID) (asset A, ok bool, err error) {
	item, ok, err := p.LoadRaw(id)
	if err != nil || !ok {
		return asset, ok, err
	}
	asset, err = item.Decode()
	if err != nil {
		return asset, false, fmt.Errorf("asset %s: %w", id, err)
	}
	return asset, true, nil
}

// LoadRaw returns the stored bytes of the asset with the given ID without
// decoding them. If the module holds no such asset, ok is false and err is
// nil.
func (p *Parser[A]) LoadRaw(id ID) (item Item[A], ok bool, err error) {
	loc, ok := p.manifest.Lookup(id)
	if !ok {
		return Item[A]{}, false, nil
	}
	item, err = p.item(loc)
	if err != nil {
		return Item[A]{}, false, fmt.Errorf("asset %s: %w", id, err)
	}
	return item, true, nil
}

// All returns an iterator over every asset in ascending ID order. Each asset
// is decoded independently; a failure is reported with the asset's ID and
// iteration continues. Every call starts a fresh iteration.
func (p *Parser[A]) All() iter.Seq2[Entry[A], error] {
	return func(yield func(Entry[A], error) bool) {
		for id, loc := range p.manifest.All() {
			e := Entry[A]{ID: id}
			item, err := p.item(loc)
			if err == nil {
				e.Asset, err = item.Decode()
			}
			if err != nil {
				err = fmt.Errorf("asset %s: %w", id, err)
			}
			if !yield(e, err) {
				return
			}
		}
	}
}

// Close releases decoder resources. Items loaded earlier remain usable.
func (p *Parser[A]) Close() {
	p.dec.Close()
}

// StripModule returns the parsed module with every asset section removed.
func (p *Parser[A]) StripModule() ([]byte, error) {
	return Strip(p.module)
}

// item slices the module for loc.
func (p *Parser[A]) item(loc Location) (Item[A], error) {
	if !loc.Range.Within(len(p.module)) {
		return Item[A]{}, deserializeError(fmt.Errorf("%w: range %s exceeds module of %d bytes",
			ErrOutOfRange, loc.Range, len(p.module)))
	}
	return Item[A]{
		data:        p.module[loc.Range.Start:loc.Range.End],
		compression: loc.Compression,
		dec:         p.dec,
	}, nil
}
