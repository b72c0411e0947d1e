package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ha1tch/citymap/pkg/mapfile"
	"github.com/ha1tch/citymap/pkg/render"
)

// Config holds citymap rendering configuration.
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	Edges   EdgesConfig   `toml:"edges"`
	Nodes   NodesConfig   `toml:"nodes"`
	Overlay OverlayConfig `toml:"overlay"`
}

// CanvasConfig sets the output size.
type CanvasConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

// EdgesConfig controls how routes are drawn.
type EdgesConfig struct {
	Width         float64 `toml:"width"`
	ArrowGlyph    string  `toml:"arrow_glyph"`
	ArrowFontSize float64 `toml:"arrow_font_size"`
	ArrowColor    string  `toml:"arrow_color"`
	TangentArrows bool    `toml:"tangent_arrows"`
}

// NodesConfig controls how cities are drawn.
type NodesConfig struct {
	Color string `toml:"color"`
}

// OverlayConfig controls the shortest-path overlay.
type OverlayConfig struct {
	Color string    `toml:"color"`
	Width float64   `toml:"width"`
	Dash  []float64 `toml:"dash"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: 1200, Height: 600, Background: "#ffffff"},
		Edges: EdgesConfig{
			Width:         4,
			ArrowGlyph:    "-->",
			ArrowFontSize: render.DefaultArrowSize,
			ArrowColor:    "#000000",
		},
		Nodes:   NodesConfig{Color: "#000000"},
		Overlay: OverlayConfig{Color: "#ff0000", Width: 2, Dash: []float64{9}},
	}
}

// ConfigDir returns the citymap config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "citymap")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config at path over the defaults. An empty path means
// DefaultPath. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories. An empty path
// means DefaultPath.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks sizes and colors.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Edges.Width <= 0 {
		return fmt.Errorf("edge width %g must be positive", c.Edges.Width)
	}
	if c.Edges.ArrowFontSize <= 0 {
		return fmt.Errorf("arrow font size %g must be positive", c.Edges.ArrowFontSize)
	}
	for _, d := range c.Overlay.Dash {
		if d <= 0 {
			return fmt.Errorf("overlay dash %v must be positive", c.Overlay.Dash)
		}
	}
	_, err := c.Style()
	return err
}

// Style converts the configuration into a render style.
func (c *Config) Style() (render.Style, error) {
	style := render.DefaultStyle()

	colors := []struct {
		name string
		in   string
		out  *color.RGBA
	}{
		{"canvas.background", c.Canvas.Background, &style.Background},
		{"edges.arrow_color", c.Edges.ArrowColor, &style.ArrowColor},
		{"nodes.color", c.Nodes.Color, &style.NodeColor},
		{"overlay.color", c.Overlay.Color, &style.Overlay.Color},
	}
	for _, col := range colors {
		if col.in == "" {
			continue
		}
		v, err := mapfile.ParseColor(col.in)
		if err != nil {
			return render.Style{}, fmt.Errorf("%s: %w", col.name, err)
		}
		*col.out = v
	}

	style.EdgeWidth = c.Edges.Width
	style.ArrowGlyph = c.Edges.ArrowGlyph
	style.TangentArrows = c.Edges.TangentArrows
	if c.Edges.ArrowFontSize != style.ArrowSize {
		face, err := render.NewFace(c.Edges.ArrowFontSize)
		if err != nil {
			return render.Style{}, err
		}
		style.ArrowFace = face
		style.ArrowSize = c.Edges.ArrowFontSize
	}
	style.Overlay.Width = c.Overlay.Width
	style.Overlay.Dash = append([]float64(nil), c.Overlay.Dash...)
	return style, nil
}
