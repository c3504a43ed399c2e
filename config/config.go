// Package config holds the viewer's TOML settings. Every field has a
// default, so a missing file or a partial file is valid.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Window struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Title      string `toml:"title"`
	VSync      bool   `toml:"vsync"`
	Fullscreen bool   `toml:"fullscreen"`
}

// Assets locates models, shaders and skybox faces.
type Assets struct {
	Root string `toml:"root"`
}

type Shadow struct {
	// Size is the edge length of the square depth map in texels.
	Size int `toml:"size"`
}

type Camera struct {
	BaseSpeed   float32 `toml:"base_speed"`
	BoostSpeed  float32 `toml:"boost_speed"`
	Sensitivity float32 `toml:"sensitivity"`
	FOV         float32 `toml:"fov"`
	ZoomFOV     float32 `toml:"zoom_fov"`
}

type Snow struct {
	Seed     int64   `toml:"seed"`
	TickRate float32 `toml:"tick_rate"`
}

// Light orients the sun.
type Light struct {
	// SunYaw rotates the sun direction about the vertical axis, in degrees.
	SunYaw float32 `toml:"sun_yaw"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the whole settings file.
type Config struct {
	Window Window `toml:"window"`
	Assets Assets `toml:"assets"`
	Shadow Shadow `toml:"shadow"`
	Camera Camera `toml:"camera"`
	Snow   Snow   `toml:"snow"`
	Light  Light  `toml:"light"`
	Log    Log    `toml:"log"`
}

// Default returns the settings used when no file overrides them.
func Default() Config {
	return Config{
		Window: Window{Width: 1024, Height: 768, Title: "Snowfall", VSync: true},
		Assets: Assets{Root: "assets"},
		Shadow: Shadow{Size: 8192},
		Camera: Camera{
			BaseSpeed:   5,
			BoostSpeed:  15,
			Sensitivity: 0.1,
			FOV:         45,
			ZoomFOV:     15,
		},
		Snow: Snow{Seed: 1, TickRate: 60},
		Log:  Log{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. A file that does not exist yields
// the defaults; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config file not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := Decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Decode strictly decodes TOML from r into cfg, keeping fields the
// document does not mention, then validates the result.
func Decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return err
	}
	return cfg.Validate()
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Shadow.Size <= 0:
		return fmt.Errorf("shadow.size %d must be positive", c.Shadow.Size)
	case c.Snow.TickRate <= 0:
		return fmt.Errorf("snow.tick_rate %v must be positive", c.Snow.TickRate)
	case c.Camera.FOV < 1 || c.Camera.FOV > 90:
		return fmt.Errorf("camera.fov %v outside [1, 90]", c.Camera.FOV)
	case c.Camera.ZoomFOV < 1 || c.Camera.ZoomFOV > 90:
		return fmt.Errorf("camera.zoom_fov %v outside [1, 90]", c.Camera.ZoomFOV)
	case c.Camera.BaseSpeed <= 0 || c.Camera.BoostSpeed <= 0:
		return fmt.Errorf("camera speeds must be positive")
	case c.Camera.Sensitivity <= 0:
		return fmt.Errorf("camera.sensitivity %v must be positive", c.Camera.Sensitivity)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: want text or json", c.Log.Format)
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return lvl, fmt.Errorf("log.level %q: %w", s, err)
	}
	return lvl, nil
}

// Marshal renders cfg as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
