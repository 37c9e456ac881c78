// vitrine - Terminal glTF model viewer
// Shows a single GLB model under a three-light rig with orbit controls and
// a keyboard control panel for lighting, background and opacity.
//
// Controls:
//
//	Mouse drag    - Orbit the camera
//	Scroll, +/-   - Zoom in/out
//	W/A/S/D       - Orbit with the keyboard
//	Double click  - Reset view (also R)
//	Tab/Shift+Tab - Move panel focus
//	Left/Right    - Adjust the focused control
//	Enter/Space   - Toggle the focused control
//	P             - Show or hide the panel
//	Esc           - Quit
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

const longHelp = `vitrine - Terminal glTF model viewer

Displays a single GLB model, fitted to the view, under an ambient, key and
fill light. Lighting, background and opacity are tuned from the control
panel or from a TOML config file.

Controls:
  Mouse drag    - Orbit the camera
  Scroll, +/-   - Zoom in/out
  W/A/S/D       - Orbit with the keyboard
  Double click  - Reset view (also R)
  Tab/Shift+Tab - Move panel focus
  Left/Right    - Adjust the focused control
  Enter/Space   - Toggle the focused control
  P             - Show or hide the panel
  Esc           - Quit`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "vitrine [model.glb]",
		Short: "Terminal glTF model viewer",
		Long:  longHelp,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.modelPath = args[0]
			}
			opts.fpsSet = cmd.Flags().Changed("fps")
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.fps, "fps", 60, "Target FPS")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the config file when it changes")
	cmd.Flags().StringVar(&opts.logPath, "log", "", "Write JSON logs to this file")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Log at debug level")

	infoCmd := &cobra.Command{
		Use:   "info <model.glb>",
		Short: "Display model information",
		Long:  "Display information about a glTF model including mesh, material, polygon and vertex counts, bounding box and the scale vitrine fits it with.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
	cmd.AddCommand(infoCmd, newSnapshotCmd())

	return cmd
}
