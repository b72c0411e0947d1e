package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/citymap/pkg/geom"
	"github.com/ha1tch/citymap/pkg/render"
)

// Styles
var (
	styleDefault  = tcell.StyleDefault
	styleRoute    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleArrow    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleCity     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCitySel  = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo  = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgGood  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorNavy)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	mapRows := h - 2
	if mapRows < 1 {
		mapRows = 1
	}
	canvas := NewTermCanvas(v.screen, 0, 0, w, mapRows)
	if v.canvas == nil || v.canvas.cols != w || v.canvas.rows != mapRows {
		v.dirty = true
	}
	v.canvas = canvas

	if v.dirty || v.frame == nil {
		cw, ch := canvas.Size()
		v.frame = render.NewFrame(cw, ch)
		v.engine.Redraw(v.frame)
		v.dirty = false
	}
	v.frame.Replay(canvas)
	v.drawLabels(canvas)

	v.drawStatusBar(w, h)
}

// drawLabels writes each city's name to the right of its marker.
func (v *Viewer) drawLabels(c *TermCanvas) {
	cw, ch := c.Size()
	nodes := v.engine.Model().SnapshotNodes()
	for i := 0; i < nodes.Len(); i++ {
		n := nodes.At(i)
		sx, sy, ok := c.Cell(geom.Scale(geom.Point{X: n.X, Y: n.Y}, cw, ch))
		if !ok {
			continue
		}
		if n.ID == v.selected {
			r, _, _, _ := v.screen.GetContent(sx, sy)
			v.screen.SetContent(sx, sy, r, nil, styleCitySel)
		}
		if n.Name != "" {
			v.drawString(sx+2, sy, truncate(n.Name, c.x+c.cols-sx-2), styleLabel)
		}
	}
}

func (v *Viewer) drawStatusBar(w, h int) {
	y := h - 1

	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	info := fmt.Sprintf("%s  %d cities", v.mapName, v.engine.NodeCount())
	v.drawString(1, y, info, styleStatus)

	modeStr := v.modeString()
	v.drawString(w/2-len(modeStr)/2, y, modeStr, styleStatus)

	if v.message != "" {
		style := styleMsgInfo
		switch v.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgGood
		}
		msg := truncate(v.message, w/2-2)
		v.drawString(w-len([]rune(msg))-2, y, msg, style)
	}

	// Help bar
	y = h - 2
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	v.drawString(1, y, v.helpString(), styleHelp)
}

func (v *Viewer) drawString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (v *Viewer) modeString() string {
	switch v.mode {
	case ModePickFrom:
		return "ROUTE: FROM"
	case ModePickTo:
		return "ROUTE: TO"
	}
	return "BROWSE"
}

func (v *Viewer) helpString() string {
	switch v.mode {
	case ModePickFrom, ModePickTo:
		return "Click a city | Esc: Cancel"
	}
	return "Click: Identify | p: Route | r: Reload | q: Quit"
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 {
		return ""
	}
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
