package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meigma/wasset"
)

func newListCmd(a *app) *cobra.Command {
	var indexPath string
	cmd := &cobra.Command{
		Use:   "list <module.wasm>",
		Short: "List the assets embedded in a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := a.parse(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			names := map[wasset.ID]string{}
			if indexPath != "" {
				idx, err := loadIndex(indexPath)
				if err != nil {
					return err
				}
				for path, id := range idx.All() {
					names[id] = path
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tSIZE\tCOMPRESSION\tEMBEDDING\tPATH")
			for id, loc := range p.Manifest().All() {
				asset, _, err := p.Load(id)
				if err != nil {
					return err
				}
				path := names[id]
				if path == "" {
					path = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
					id, asset.Kind, len(asset.Bytes()), loc.Compression, loc.Embedding, path)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&indexPath, "index", "", "Path index written by embed --index, used to show asset paths")
	return cmd
}
