package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiBlue, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Out is where status lines are written.
var Out io.Writer = os.Stderr

// Success prints a green check line.
func Success(format string, args ...any) {
	fmt.Fprintf(Out, "%s %s\n", StatusIcon(true), fmt.Sprintf(format, args...))
}

// Fail prints a red cross line.
func Fail(format string, args ...any) {
	fmt.Fprintf(Out, "%s %s\n", StatusIcon(false), Bad.Sprintf(format, args...))
}

// Warning prints a yellow warning line.
func Warning(format string, args ...any) {
	fmt.Fprintf(Out, "%s %s\n", WarnIcon(), Warn.Sprintf(format, args...))
}

// Table prints a simple aligned table to w.
func Table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Fprintln(w, headerLine)
	Subtle.Fprintln(w, sepLine)

	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w, line)
	}
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// WarnIcon returns a warning icon.
func WarnIcon() string {
	return Warn.Sprint("⚠")
}
