// Command citymap renders, inspects and converts city route maps.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/citymap/internal/config"
	"github.com/ha1tch/citymap/internal/ui"
	"github.com/ha1tch/citymap/pkg/citymap"
	"github.com/ha1tch/citymap/pkg/mapfile"
	"github.com/ha1tch/citymap/pkg/render"
)

var version = "0.1.0"

// app holds state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.Fail("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "citymap",
		Short: "Render and inspect city route maps",
		Long: `citymap draws maps of cities joined by directed routes. Routes are
curved so that parallel and opposite routes stay apart, and shortest paths
can be overlaid on the rendered map.

Map files are JSON, TOML or YAML, chosen by extension.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/citymap/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newInfoCmd(a))
	root.AddCommand(newHitCmd(a))
	root.AddCommand(newPathCmd(a))
	root.AddCommand(newConvertCmd(a))
	root.AddCommand(newDotCmd(a))
	root.AddCommand(newWatchCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	return nil
}

// openMap loads the map at path into a fresh engine styled by the config.
func (a *app) openMap(ctx context.Context, path string, repaint func()) (*render.Engine, *mapfile.FileSource, error) {
	style, err := a.cfg.Style()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	e := render.New(citymap.NewModel(), render.Options{
		Style:   style,
		Logger:  a.logger,
		Repaint: repaint,
	})
	src := mapfile.NewFileSource(path)
	if err := mapfile.Load(ctx, src, e); err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	a.logger.Debug("map loaded",
		slog.String("path", path),
		slog.Int("cities", e.Model().NodeCount()),
		slog.Int("routes", e.Model().EdgeCount()))
	return e, src, nil
}

// canvasSize applies the config defaults to flag values of zero.
func (a *app) canvasSize(width, height int) (int, int) {
	if width <= 0 {
		width = a.cfg.Canvas.Width
	}
	if height <= 0 {
		height = a.cfg.Canvas.Height
	}
	return width, height
}

// writeImage renders e to out as PNG or SVG depending on the extension.
func writeImage(e *render.Engine, out string, width, height int) (render.FrameStats, error) {
	ext := strings.ToLower(filepath.Ext(out))
	if ext != ".png" && ext != ".svg" {
		return render.FrameStats{}, fmt.Errorf("%s: output must be .png or .svg", out)
	}

	f, err := os.Create(out)
	if err != nil {
		return render.FrameStats{}, err
	}
	defer f.Close()

	var stats render.FrameStats
	if ext == ".svg" {
		stats = render.RenderSVG(e, f, width, height)
	} else {
		stats, err = render.RenderPNG(e, f, width, height)
		if err != nil {
			return stats, err
		}
	}
	return stats, f.Close()
}
