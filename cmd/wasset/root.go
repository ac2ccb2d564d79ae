package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/wasset"
	"github.com/meigma/wasset/encoders/example"
)

// app is the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool

	cfg    Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "wasset",
		Short:         "Embed asset folders into WebAssembly custom sections",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default $"+configEnv+")")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		newEmbedCmd(a),
		newListCmd(a),
		newCatCmd(a),
		newStripCmd(a),
		newTreeCmd(a),
	)
	return cmd
}

// parse reads the module at path and merges its embeddings.
func (a *app) parse(path string) ([]byte, *wasset.Parser[example.Asset], error) {
	module, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	opts := append(a.cfg.parseOptions(), wasset.ParseWithLogger(a.logger))
	p, err := wasset.Parse[example.Asset](module, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return module, p, nil
}

// loadIndex reads a hierarchy index written by embed --index.
func loadIndex(path string) (*wasset.Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	idx, err := wasset.LoadIndex(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// writeFile writes data to path, keeping the mode of an existing file.
func writeFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, data, mode)
}
