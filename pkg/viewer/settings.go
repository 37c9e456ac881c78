// Package viewer wires the renderer, the glTF loader and the terminal into
// an interactive single-model viewer.
package viewer

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Background modes.
const (
	BackgroundModeSolid    = "solid"
	BackgroundModeGradient = "gradient"
)

// DefaultModelPath is loaded when no model is given.
const DefaultModelPath = "model.glb"

// DefaultFPS is the render loop rate.
const DefaultFPS = 60

// MaxFPS bounds the render loop rate.
const MaxFPS = 1000

// ValidateFPS reports whether fps is a usable render loop rate.
func ValidateFPS(fps int) error {
	if fps <= 0 || fps > MaxFPS {
		return fmt.Errorf("fps must be between 1 and %d, got %d", MaxFPS, fps)
	}
	return nil
}

// Settings is the flat record the control panel edits. Refresh functions
// copy it onto the live scene.
type Settings struct {
	AmbientColor     string  `toml:"ambient_color"`
	AmbientIntensity float64 `toml:"ambient_intensity"`
	KeyColor         string  `toml:"key_color"`
	KeyIntensity     float64 `toml:"key_intensity"`
	FillColor        string  `toml:"fill_color"`
	FillIntensity    float64 `toml:"fill_intensity"`
	BackgroundMode   string  `toml:"background_mode"`
	BackgroundColor  string  `toml:"background_color"`
	GradientTop      string  `toml:"gradient_top"`
	GradientBottom   string  `toml:"gradient_bottom"`
	Opacity          float64 `toml:"opacity"`
	Shadows          bool    `toml:"shadows"`
	AutoRotate       bool    `toml:"auto_rotate"`
}

// DefaultSettings returns the initial settings.
func DefaultSettings() Settings {
	return Settings{
		AmbientColor:     "#404040",
		AmbientIntensity: 0.6,
		KeyColor:         "#ffffff",
		KeyIntensity:     0.8,
		FillColor:        "#ffffff",
		FillIntensity:    0.3,
		BackgroundMode:   BackgroundModeSolid,
		BackgroundColor:  "#f0f0f0",
		GradientTop:      "#3a4a6b",
		GradientBottom:   "#f0f0f0",
		Opacity:          1,
		Shadows:          true,
	}
}

// Validate reports the first malformed field.
func (s Settings) Validate() error {
	colors := []struct{ name, hex string }{
		{"ambient_color", s.AmbientColor},
		{"key_color", s.KeyColor},
		{"fill_color", s.FillColor},
		{"background_color", s.BackgroundColor},
		{"gradient_top", s.GradientTop},
		{"gradient_bottom", s.GradientBottom},
	}
	for _, c := range colors {
		if _, err := colorful.Hex(c.hex); err != nil {
			return fmt.Errorf("%s: invalid color %q", c.name, c.hex)
		}
	}
	switch s.BackgroundMode {
	case BackgroundModeSolid, BackgroundModeGradient:
	default:
		return fmt.Errorf("background_mode: unknown mode %q", s.BackgroundMode)
	}
	return nil
}

// Config is the optional TOML configuration file.
type Config struct {
	Model    string   `toml:"model"`
	FPS      int      `toml:"fps"`
	Settings Settings `toml:"settings"`
}

// DefaultConfig returns the configuration used without a file.
func DefaultConfig() Config {
	return Config{
		Model:    DefaultModelPath,
		FPS:      DefaultFPS,
		Settings: DefaultSettings(),
	}
}

// ParseConfig decodes TOML on top of the defaults, so missing keys keep
// their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := ValidateFPS(cfg.FPS); err != nil {
		return Config{}, err
	}
	if err := cfg.Settings.Validate(); err != nil {
		return Config{}, fmt.Errorf("settings: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// parseColor converts a hex string, falling back to black.
func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}
