package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/citymap/internal/ui"
	"github.com/ha1tch/citymap/pkg/pathfind"
)

func newHitCmd(a *app) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "hit <map> <x> <y>",
		Short: "Find the city under a canvas pixel",
		Example: `  citymap hit hungary.json 624 246
  citymap hit hungary.json 100 50 --width 200 --height 100`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}

			e, _, err := a.openMap(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			w, h := a.canvasSize(width, height)
			e.SetCanvasSize(float64(w), float64(h))

			n, ok := e.FindNearestPixel(x, y)
			if !ok {
				ui.Warning("no city at (%g, %g) on a %dx%d canvas", x, y, w, h)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", n.ID, n.Label(), n.Type)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "canvas width in pixels (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "canvas height in pixels (default from config)")
	return cmd
}

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path <map> <from> <to>",
		Short: "Print the shortest route between two cities",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("from: %w", err)
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("to: %w", err)
			}

			e, _, err := a.openMap(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			m := e.Model()
			p, err := pathfind.ShortestPath(m.SnapshotNodes(), m.SnapshotEdges(), from, to)
			if err != nil {
				return err
			}

			labels := make([]string, len(p))
			for i, n := range p {
				labels[i] = n.Label()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", strings.Join(labels, " -> "))
			fmt.Fprintf(cmd.OutOrStdout(), "%d hops, length %.4f\n", len(p)-1, pathfind.Length(p))
			return nil
		},
	}
}
