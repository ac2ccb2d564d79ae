package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/wasset"
)

func newStripCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "strip <module.wasm>",
		Short: "Remove every embedding from a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			stripped, err := wasset.Strip(module)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if output == "" {
				output = args[0]
			}
			if err := writeFile(output, stripped); err != nil {
				return err
			}
			a.logger.Debug("stripped module", "module", output, "removed", len(module)-len(stripped))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: removed %d bytes\n", output, len(module)-len(stripped))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result here instead of rewriting the module")
	return cmd
}
