package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestStatusLines(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	old := Out
	Out = &buf
	defer func() { Out = old }()

	Success("wrote %s", "map.png")
	Fail("load %d", 3)
	Warning("slow")

	want := "\u2713 wrote map.png\n\u2717 load 3\n\u26A0 slow\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestTable(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	Table(&buf, []string{"ID", "NAME"}, [][]string{
		{"1", "Budapest"},
		{"22", "Pécs"},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[2], "  1   Budapest") {
		t.Errorf("unexpected row %q", lines[2])
	}

	buf.Reset()
	Table(&buf, []string{"ID"}, nil)
	if buf.Len() != 0 {
		t.Errorf("empty table should print nothing, got %q", buf.String())
	}
}
