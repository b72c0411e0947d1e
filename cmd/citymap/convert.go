package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/citymap/internal/ui"
	"github.com/ha1tch/citymap/pkg/mapfile"
)

func newConvertCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a map between JSON, TOML and YAML",
		Example: `  citymap convert hungary.json -o hungary.toml
  citymap convert hungary.toml -o hungary.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := mapfile.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if err := mapfile.WriteFile(out, doc); err != nil {
				return err
			}
			a.logger.Debug("converted", "from", args[0], "to", out)
			ui.Success("wrote %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (.json, .toml, .yaml)")
	cmd.MarkFlagRequired("output")
	return cmd
}

func newDotCmd(a *app) *cobra.Command {
	var out string
	var title string

	cmd := &cobra.Command{
		Use:   "dot <map>",
		Short: "Generate Graphviz DOT output",
		Example: `  citymap dot hungary.json | neato -n -Tpng -o hungary.png
  citymap dot hungary.json -o hungary.dot -t "Hungarian rail"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := mapfile.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			dot := mapfile.GenerateDOT(doc, title)
			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), dot)
				return nil
			}
			if err := os.WriteFile(out, []byte(dot), 0o644); err != nil {
				return err
			}
			ui.Success("wrote %s", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "graph title (default map name)")
	return cmd
}
