package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigrr/vitrine/pkg/viewer"
)

type snapshotOptions struct {
	width, height int
	configPath    string
}

func newSnapshotCmd() *cobra.Command {
	var opts snapshotOptions

	cmd := &cobra.Command{
		Use:   "snapshot <model.glb> <out.png>",
		Short: "Render one frame to a PNG",
		Long:  "Render the model as the viewer first shows it, fitted to the view under the configured lights and background, and save the frame as a PNG. No terminal is needed.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 160, "Width in cells")
	cmd.Flags().IntVar(&opts.height, "height", 48, "Height in cells (two pixels each)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a TOML config file")

	return cmd
}

func runSnapshot(ctx context.Context, modelPath, outPath string, opts snapshotOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", opts.width, opts.height)
	}

	settings := viewer.DefaultSettings()
	if opts.configPath != "" {
		cfg, err := viewer.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		settings = cfg.Settings
	}

	app := viewer.New(viewer.Options{
		ModelPath: modelPath,
		Settings:  settings,
		Width:     opts.width,
		Height:    opts.height,
	}, nil)

	fb, err := app.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := fb.SavePNG(outPath); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
