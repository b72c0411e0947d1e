// Command cityview is an interactive terminal viewer for city maps.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/citymap/internal/config"
	"github.com/ha1tch/citymap/pkg/citymap"
	"github.com/ha1tch/citymap/pkg/mapfile"
	"github.com/ha1tch/citymap/pkg/pathfind"
	"github.com/ha1tch/citymap/pkg/render"
)

const usage = `cityview - interactive city map viewer

Usage:
  cityview <map.{json,toml,yaml}>

Keys:
  click    identify a city
  p        pick two cities and show the shortest route between them
  r        reload the map from disk
  q, Esc   quit

Set CITYVIEW_LOG to a file path to write debug logs there.
`

// Mode is the viewer's input mode.
type Mode int

const (
	ModeBrowse   Mode = iota
	ModePickFrom      // waiting for the first city of a route
	ModePickTo        // waiting for the second city
)

// MessageType for status messages
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
	MsgSuccess
)

// Viewer holds the terminal session state.
type Viewer struct {
	screen tcell.Screen
	engine *render.Engine
	src    *mapfile.FileSource
	logger *slog.Logger

	filename string
	mapName  string

	// frame caches the last engine redraw; the screen replays it until the
	// engine asks for a repaint.
	frame  *render.Frame
	dirty  bool
	canvas *TermCanvas

	mode        Mode
	pickFrom    citymap.Node
	selected    int // city id, or -1
	lastButtons tcell.ButtonMask

	message     string
	messageType MessageType
}

func main() {
	if len(os.Args) != 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		fmt.Print(usage)
		os.Exit(1)
	}

	logger, closeLog := newLogger(os.Getenv("CITYVIEW_LOG"))
	defer closeLog()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	style, err := cfg.Style()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in config: %v\n", err)
		os.Exit(1)
	}

	v := NewViewer(os.Args[1], style, logger)
	if err := v.Reload(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", v.filename, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()

	v.screen = screen
	v.run()

	screen.Fini()
}

func newLogger(path string) (*slog.Logger, func()) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { f.Close() }
}

// NewViewer creates a viewer for the map at path. Call Reload to read it.
func NewViewer(path string, style render.Style, logger *slog.Logger) *Viewer {
	v := &Viewer{
		src:      mapfile.NewFileSource(path),
		logger:   logger,
		filename: path,
		selected: -1,
		dirty:    true,
	}
	v.engine = render.New(citymap.NewModel(), render.Options{
		Style:   style,
		Logger:  logger,
		Repaint: func() { v.dirty = true },
	})
	return v
}

// Reload reads the map from disk. A failed reload keeps the current map.
func (v *Viewer) Reload() error {
	if err := mapfile.Load(context.Background(), v.src, v.engine); err != nil {
		return err
	}
	if doc := v.src.Document(); doc != nil && doc.Name != "" {
		v.mapName = doc.Name
	} else {
		v.mapName = filepath.Base(v.filename)
	}
	if _, ok := v.engine.Model().SnapshotNodes().Lookup(v.selected); !ok {
		v.selected = -1
	}
	v.logger.Info("map loaded",
		slog.String("path", v.filename),
		slog.Int("cities", v.engine.NodeCount()))
	return nil
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.dirty = true
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			v.handleMouse(ev)
		case nil:
			return
		}
	}
}

// handleKey returns true when the viewer should exit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if v.mode != ModeBrowse {
			v.mode = ModeBrowse
			v.showMessage("Route cancelled", MsgInfo)
			return false
		}
		return true
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'p', 'P':
			v.mode = ModePickFrom
			v.showMessage("Click the start city", MsgInfo)
		case 'r', 'R':
			if err := v.Reload(); err != nil {
				v.showMessage("Reload failed: "+err.Error(), MsgError)
			} else {
				v.showMessage("Reloaded", MsgSuccess)
			}
		}
	}
	return false
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && v.lastButtons&tcell.Button1 == 0
	v.lastButtons = buttons
	if !pressed || v.canvas == nil {
		return
	}

	x, y := ev.Position()
	if !v.canvas.Contains(x, y) {
		return
	}
	n, ok := v.pick(x, y)
	if !ok {
		if v.mode == ModeBrowse {
			v.selected = -1
			v.showMessage("", MsgInfo)
		}
		return
	}
	v.selected = n.ID

	switch v.mode {
	case ModeBrowse:
		v.showMessage(fmt.Sprintf("%s (%s) #%d", n.Label(), n.Type, n.ID), MsgInfo)
	case ModePickFrom:
		v.pickFrom = n
		v.mode = ModePickTo
		v.showMessage("From "+n.Label()+", click the destination", MsgInfo)
	case ModePickTo:
		v.mode = ModeBrowse
		v.showRoute(v.pickFrom, n)
	}
}

// pick hit-tests a screen cell. A cell spans many virtual pixels, so
// several points inside it are tried, center first.
func (v *Viewer) pick(sx, sy int) (citymap.Node, bool) {
	cx, cy := v.canvas.PixelAt(sx, sy)
	offsets := [][2]float64{
		{0, 0},
		{0, -CellHeight / 4}, {0, CellHeight / 4},
		{-CellWidth / 4, 0}, {CellWidth / 4, 0},
		{0, -CellHeight/2 + 1}, {0, CellHeight/2 - 1},
	}
	for _, o := range offsets {
		if n, ok := v.engine.FindNearestPixel(cx+o[0], cy+o[1]); ok {
			return n, true
		}
	}
	return citymap.Node{}, false
}

func (v *Viewer) showRoute(from, to citymap.Node) {
	m := v.engine.Model()
	p, err := pathfind.ShortestPath(m.SnapshotNodes(), m.SnapshotEdges(), from.ID, to.ID)
	if err != nil {
		v.showMessage(err.Error(), MsgError)
		return
	}
	v.engine.SetPathOverlay(p)
	v.showMessage(fmt.Sprintf("%s to %s: %d hops", from.Label(), to.Label(), len(p)-1), MsgSuccess)
}

func (v *Viewer) showMessage(msg string, msgType MessageType) {
	v.message = msg
	v.messageType = msgType
}
