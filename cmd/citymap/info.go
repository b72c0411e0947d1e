package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ha1tch/citymap/internal/ui"
	"github.com/ha1tch/citymap/pkg/mapfile"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <map>",
		Short: "Show the cities and routes of a map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, src, err := a.openMap(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			doc := src.Document()

			name := doc.Name
			if name == "" {
				name = args[0]
			}
			fmt.Fprintf(w, "%s\n", ui.Brand.Sprint(name))
			fmt.Fprintf(w, "  cities: %d\n", e.Model().NodeCount())
			fmt.Fprintf(w, "  routes: %d\n\n", e.Model().EdgeCount())

			nodes := e.Model().SnapshotNodes()
			var rows [][]string
			for i := 0; i < nodes.Len(); i++ {
				n := nodes.At(i)
				rows = append(rows, []string{
					strconv.Itoa(n.ID),
					n.Label(),
					n.Type.String(),
					fmt.Sprintf("%.3f", n.X),
					fmt.Sprintf("%.3f", n.Y),
				})
			}
			ui.Table(w, []string{"ID", "NAME", "TYPE", "X", "Y"}, rows)

			edges := e.Model().SnapshotEdges()
			rows = rows[:0]
			for i := 0; i < edges.Len(); i++ {
				r := edges.At(i)
				from, _ := nodes.Lookup(r.From)
				to, _ := nodes.Lookup(r.To)
				rows = append(rows, []string{
					strconv.Itoa(r.ID),
					from.Label(),
					to.Label(),
					mapfile.FormatColor(r.Color),
				})
			}
			if len(rows) > 0 {
				fmt.Fprintln(w)
			}
			ui.Table(w, []string{"ID", "FROM", "TO", "COLOR"}, rows)
			return nil
		},
	}
}
