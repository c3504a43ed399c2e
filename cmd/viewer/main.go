package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"scene-viewer/config"
	"scene-viewer/core"
	"scene-viewer/internal/opengl"
	"scene-viewer/renderer"
	"scene-viewer/viewer"
)

type flags struct {
	config     string
	assets     string
	logLevel   string
	fullscreen bool
	set        map[string]bool
}

func parseFlags(fs *flag.FlagSet, args []string) (flags, error) {
	var f flags
	fs.StringVar(&f.config, "config", "viewer.toml", "path to the TOML configuration file")
	fs.StringVar(&f.assets, "assets", "", "asset root (overrides assets.root)")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (overrides log.level)")
	fs.BoolVar(&f.fullscreen, "fullscreen", false, "start fullscreen (overrides window.fullscreen)")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if fs.NArg() > 0 {
		return f, fmt.Errorf("unknown arguments: %v", fs.Args())
	}
	f.set = map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply layers explicitly set flags over cfg and revalidates.
func (f flags) apply(cfg *config.Config) error {
	if f.set["assets"] {
		cfg.Assets.Root = f.assets
	}
	if f.set["log-level"] {
		cfg.Log.Level = f.logLevel
	}
	if f.set["fullscreen"] {
		cfg.Window.Fullscreen = f.fullscreen
	}
	return cfg.Validate()
}

func newLogger(c config.Log, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func settingsFrom(cfg config.Config, width, height int) viewer.Settings {
	return viewer.Settings{
		BaseSpeed:   cfg.Camera.BaseSpeed,
		BoostSpeed:  cfg.Camera.BoostSpeed,
		Sensitivity: cfg.Camera.Sensitivity,
		FOV:         cfg.Camera.FOV,
		ZoomFOV:     cfg.Camera.ZoomFOV,
		Width:       width,
		Height:      height,
		SnowSeed:    cfg.Snow.Seed,
		TickRate:    cfg.Snow.TickRate,
		SunYaw:      cfg.Light.SunYaw,
	}
}

func main() {
	f, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("bad arguments", "err", err)
		os.Exit(2)
	}
	cfg, err := config.Load(f.config)
	if err == nil {
		err = f.apply(&cfg)
	}
	if err != nil {
		slog.Error("configuration", "err", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		slog.Error("logger", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if err := run(cfg); err != nil {
		slog.Error("viewer stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	assets, err := renderer.LoadAssets(cfg.Assets.Root)
	if err != nil {
		return err
	}

	window, err := core.NewWindow(core.WindowConfig{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		Resizable:  true,
		VSync:      cfg.Window.VSync,
		Fullscreen: cfg.Window.Fullscreen,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	if err := opengl.Init(); err != nil {
		return err
	}

	scene, err := renderer.New(cfg.Assets.Root, assets, cfg.Shadow.Size)
	if err != nil {
		return err
	}
	defer scene.Destroy()

	width, height := window.GetFramebufferSize()
	state := viewer.NewState(settingsFrom(cfg, width, height))
	state.Toggles.Fullscreen = cfg.Window.Fullscreen

	v := viewer.New(state, window, scene, window)
	window.SetHandler(v)
	window.CaptureCursor()

	slog.Info("entering frame loop")
	for !window.ShouldClose() {
		window.PollEvents()
		v.Frame()
		window.SwapBuffers()
	}
	drawn, culled := scene.DrawStats()
	slog.Info("frame loop done", "frames", v.Frames(), "last_drawn", drawn, "last_culled", culled)
	return nil
}
