package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/vitrine/pkg/viewer"
)

type runOptions struct {
	modelPath  string
	fps        int
	fpsSet     bool
	configPath string
	watch      bool
	logPath    string
	debug      bool
}

// config merges the config file, if any, with the command line. Flags and
// the model argument win over the file.
func (o runOptions) config() (viewer.Config, error) {
	cfg := viewer.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = viewer.LoadConfig(o.configPath); err != nil {
			return viewer.Config{}, err
		}
	}
	if o.modelPath != "" {
		cfg.Model = o.modelPath
	}
	if o.fpsSet || o.configPath == "" {
		cfg.FPS = o.fps
	}
	if err := viewer.ValidateFPS(cfg.FPS); err != nil {
		return viewer.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, opts runOptions) error {
	if opts.watch && opts.configPath == "" {
		return errors.New("--watch needs --config")
	}

	cfg, err := opts.config()
	if err != nil {
		return err
	}

	logger, err := viewer.NewLogger(opts.logPath, opts.debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	app := viewer.New(viewer.Options{
		ModelPath: cfg.Model,
		FPS:       cfg.FPS,
		Settings:  cfg.Settings,
		Width:     width,
		Height:    height,
		OnResize: func(w, h int) {
			term.Erase()
			term.Resize(w, h)
		},
	}, logger)

	logger.Info("starting",
		zap.String("model", cfg.Model),
		zap.Int("fps", cfg.FPS),
		zap.Int("width", width),
		zap.Int("height", height),
	)

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.Go(func() error {
		// Quitting from the keyboard stops the watcher too.
		defer cancel()
		return app.Run(ctx, term.Events(), term, os.Stdout)
	})

	if opts.watch {
		g.Go(func() error {
			return viewer.WatchConfig(ctx, opts.configPath, app.SettingsUpdates(), logger)
		})
	}

	return g.Wait()
}
