package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meigma/wasset"
)

func newCatCmd(a *app) *cobra.Command {
	var indexPath string
	cmd := &cobra.Command{
		Use:   "cat <module.wasm> <id|path>",
		Short: "Write the contents of one asset to stdout",
		Long: `Write the contents of one asset to stdout. The asset is named by its ID,
or by its path (for example assets/sub/logo) when --index is set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveAsset(args[1], indexPath)
			if err != nil {
				return err
			}

			_, p, err := a.parse(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			asset, ok, err := p.Load(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("asset %s not found in %s", id, args[0])
			}
			_, err = cmd.OutOrStdout().Write(asset.Bytes())
			return err
		},
	}
	cmd.Flags().StringVar(&indexPath, "index", "", "Path index written by embed --index, used to resolve asset paths")
	return cmd
}

// resolveAsset returns the ID named by ref, looking paths up in the index at
// indexPath when one is given.
func resolveAsset(ref, indexPath string) (wasset.ID, error) {
	if id, err := wasset.ParseID(ref); err == nil {
		return id, nil
	}
	if indexPath == "" {
		return wasset.ID{}, fmt.Errorf("%q is not an asset ID; pass --index to look up paths", ref)
	}
	idx, err := loadIndex(indexPath)
	if err != nil {
		return wasset.ID{}, err
	}
	id, ok := idx.Lookup(ref)
	if !ok {
		return wasset.ID{}, fmt.Errorf("path %q not found in index", ref)
	}
	return id, nil
}
