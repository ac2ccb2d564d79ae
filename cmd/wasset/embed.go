package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/wasset"
	"github.com/meigma/wasset/encoders/example"
)

type embedFlags struct {
	output       string
	index        string
	compression  string
	maxFiles     int
	metadataFile string
	jobs         int
}

func newEmbedCmd(a *app) *cobra.Command {
	var f embedFlags
	cmd := &cobra.Command{
		Use:   "embed <module.wasm> <dir>...",
		Short: "Encode folders and append each to a module as a new embedding",
		Long: `Encode every .txt and .bin file under each dir and append the result to
the module as one embedding per dir. Text files may be extended through the
"append" key of their Wasset.toml entry.

Folders are encoded concurrently and embedded in argument order. The module
is rewritten in place unless --output is set.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modulePath, dirs := args[0], args[1:]
			if f.index != "" && len(dirs) != 1 {
				return errors.New("--index requires exactly one folder")
			}

			cfg := a.cfg
			if cmd.Flags().Changed("compression") {
				cfg.Compression = f.compression
			}
			if cmd.Flags().Changed("max-files") {
				cfg.MaxFiles = f.maxFiles
			}
			if cmd.Flags().Changed("metadata-file") {
				cfg.MetadataFile = f.metadataFile
			}
			comp, err := cfg.compression()
			if err != nil {
				return err
			}

			module, err := os.ReadFile(modulePath)
			if err != nil {
				return err
			}

			opts := []wasset.EncodeOption{
				wasset.EncodeWithCompression(comp),
				wasset.EncodeWithMaxFiles(cfg.MaxFiles),
				wasset.EncodeWithLogger(a.logger),
			}
			if cfg.MetadataFile != "" {
				opts = append(opts, wasset.EncodeWithMetadataFile(cfg.MetadataFile))
			}
			encoded, err := encodeAll(dirs, f.jobs, opts)
			if err != nil {
				return err
			}

			output := f.output
			if output == "" {
				output = modulePath
			}
			for i, assets := range encoded {
				var embedding uuid.UUID
				module, embedding, err = wasset.Embed(module, assets)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: embedded %d assets from %s as %s\n",
					output, assets.Hierarchy.Len(), dirs[i], embedding)
			}

			if err := writeFile(output, module); err != nil {
				return err
			}
			if f.index != "" {
				if err := writeFile(f.index, encoded[0].Hierarchy.Index()); err != nil {
					return err
				}
			}
			a.logger.Debug("wrote module", "module", output, "embeddings", len(encoded), "size", len(module))
			return nil
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the result here instead of rewriting the module")
	cmd.Flags().StringVar(&f.index, "index", "", "Also write the path index of the embedded assets to this file")
	cmd.Flags().StringVar(&f.compression, "compression", "none", "Record compression (none, zstd)")
	cmd.Flags().IntVar(&f.maxFiles, "max-files", 0, "Maximum number of assets per folder (0 = default, negative = unlimited)")
	cmd.Flags().StringVar(&f.metadataFile, "metadata-file", wasset.DefaultMetadataFile, "Per-directory metadata file name")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Number of folders to encode at once")
	return cmd
}

// encodeAll encodes dirs with up to jobs encodes in flight. Results keep the
// order of dirs.
func encodeAll(dirs []string, jobs int, opts []wasset.EncodeOption) ([]*wasset.EncodedAssets, error) {
	out := make([]*wasset.EncodedAssets, len(dirs))
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, dir := range dirs {
		g.Go(func() error {
			assets, err := wasset.Encode[example.Asset](dir, example.NewEncoder(), opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", dir, err)
			}
			out[i] = assets
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
