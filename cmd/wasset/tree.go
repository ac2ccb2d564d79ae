package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meigma/wasset"
	"github.com/meigma/wasset/encoders/example"
)

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <dir>",
		Short: "Encode a folder and print the resulting asset hierarchy",
		Long: `Encode a folder without embedding it and print the hierarchy of accepted
assets. IDs are freshly generated on every run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []wasset.EncodeOption{
				wasset.EncodeWithMaxFiles(a.cfg.MaxFiles),
				wasset.EncodeWithLogger(a.logger),
			}
			if a.cfg.MetadataFile != "" {
				opts = append(opts, wasset.EncodeWithMetadataFile(a.cfg.MetadataFile))
			}
			assets, err := wasset.Encode[example.Asset](args[0], example.NewEncoder(), opts...)
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), assets.Hierarchy, 0)
			return nil
		},
	}
}

func printTree(w io.Writer, h *wasset.Hierarchy, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s/\n", indent, h.Name)
	for _, a := range h.Assets {
		fmt.Fprintf(w, "%s  %s %s\n", indent, a.Name, a.ID)
	}
	for _, name := range slices.Sorted(maps.Keys(h.Children)) {
		printTree(w, h.Children[name], depth+1)
	}
}
