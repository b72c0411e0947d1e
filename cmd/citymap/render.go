package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/citymap/internal/ui"
	"github.com/ha1tch/citymap/pkg/pathfind"
	"github.com/ha1tch/citymap/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var out string
	var width, height int
	var route string

	cmd := &cobra.Command{
		Use:   "render <map>",
		Short: "Render a map to PNG or SVG",
		Example: `  citymap render hungary.json -o hungary.png
  citymap render hungary.yaml -o hungary.svg --width 800 --height 400
  citymap render hungary.json -o route.png --path 1,3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := a.openMap(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			if route != "" {
				if err := stagePath(e, route); err != nil {
					return err
				}
			}

			w, h := a.canvasSize(width, height)
			stats, err := writeImage(e, out, w, h)
			if err != nil {
				return err
			}
			ui.Success("wrote %s (%d cities, %d routes, %d path segments)",
				out, stats.Nodes, stats.Edges, stats.OverlaySegments)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (.png or .svg)")
	cmd.Flags().IntVar(&width, "width", 0, "canvas width in pixels (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "canvas height in pixels (default from config)")
	cmd.Flags().StringVar(&route, "path", "", "overlay the shortest path between two city ids, as from,to")
	cmd.MarkFlagRequired("output")

	return cmd
}

// stagePath finds the shortest path named by "from,to" and arms it as the
// engine's overlay.
func stagePath(e *render.Engine, pair string) error {
	from, to, err := parsePair(pair)
	if err != nil {
		return err
	}
	m := e.Model()
	p, err := pathfind.ShortestPath(m.SnapshotNodes(), m.SnapshotEdges(), from, to)
	if err != nil {
		return err
	}
	e.SetPathOverlay(p)
	return nil
}

func parsePair(s string) (int, int, error) {
	left, right, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("path %q: expected from,to", s)
	}
	from, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, fmt.Errorf("path %q: %w", s, err)
	}
	to, err := strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, fmt.Errorf("path %q: %w", s, err)
	}
	return from, to, nil
}
