package mapfile

import (
	"fmt"
	"strings"

	"github.com/ha1tch/citymap/pkg/citymap"
)

// dotScale is the width in inches a unit coordinate spans.
const dotScale = 10.0

// GenerateDOT converts a map to Graphviz DOT. Cities are pinned to their
// positions, so render with neato -n or fdp.
func GenerateDOT(doc *Document, title string) string {
	var sb strings.Builder

	sb.WriteString("digraph CityMap {\n")
	sb.WriteString("    layout=neato;\n")
	sb.WriteString("    node [shape=circle, style=filled, fillcolor=black, fontname=\"Helvetica\", fontsize=10, label=\"\"];\n")
	sb.WriteString("    edge [penwidth=2];\n")
	sb.WriteString("\n")

	if title == "" {
		title = doc.Name
	}
	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeDOT(title)))
		sb.WriteString("\n")
	}

	for _, c := range doc.Cities {
		typ, err := citymap.ParseNodeType(c.Type)
		if err != nil {
			typ = citymap.TypeCity
		}
		// Graphviz y grows upwards.
		x := c.X * dotScale
		y := (1 - c.Y) * dotScale / 2
		size := float64(typ.Size()) / 72
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("#%d", c.ID)
		}
		sb.WriteString(fmt.Sprintf("    n%d [pos=\"%.3f,%.3f!\", width=%.3f, xlabel=\"%s\", tooltip=\"%s\"];\n",
			c.ID, x, y, size, escapeDOT(name), typ))
	}
	sb.WriteString("\n")

	for _, r := range doc.Routes {
		attrs := []string{fmt.Sprintf("id=\"r%d\"", r.ID)}
		if r.Color != "" {
			attrs = append(attrs, fmt.Sprintf("color=\"%s\"", escapeDOT(r.Color)))
		}
		sb.WriteString(fmt.Sprintf("    n%d -> n%d [%s];\n", r.From, r.To, strings.Join(attrs, ", ")))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "<", "\\<")
	s = strings.ReplaceAll(s, ">", "\\>")
	return s
}
