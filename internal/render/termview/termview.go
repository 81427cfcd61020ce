// Package termview draws observer VIEW messages onto a terminal screen.
package termview

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"antcolony.ai/internal/observerproto"
)

const (
	glyphWorker   = 'w'
	glyphScout    = 's'
	glyphCarrying = '@'
	glyphBase     = 'B'
	glyphResource = '*'
	glyphTrail    = '.'
)

// Renderer maps a viewport onto every row of the screen but the last, which
// holds a status line.
type Renderer struct {
	screen tcell.Screen
}

func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Cell returns the screen cell covering pos, or ok=false when pos falls outside
// the viewport or the screen has no map rows.
func Cell(vp observerproto.Viewport, width, height int, pos [2]float64) (x, y int, ok bool) {
	rows := height - 1
	if width <= 0 || rows <= 0 {
		return 0, 0, false
	}
	minX, maxX := math.Min(vp.Min[0], vp.Max[0]), math.Max(vp.Min[0], vp.Max[0])
	minY, maxY := math.Min(vp.Min[1], vp.Max[1]), math.Max(vp.Min[1], vp.Max[1])
	if pos[0] < minX || pos[0] > maxX || pos[1] < minY || pos[1] > maxY {
		return 0, 0, false
	}
	x = scale(pos[0], minX, maxX, width)
	y = scale(pos[1], minY, maxY, rows)
	return x, y, true
}

func scale(v, lo, hi float64, cells int) int {
	span := hi - lo
	if span <= 0 {
		return cells / 2
	}
	c := int((v - lo) / span * float64(cells))
	if c >= cells {
		c = cells - 1
	}
	return c
}

// Draw replaces the screen contents with msg and shows it.
func (r *Renderer) Draw(msg observerproto.ViewMsg) {
	r.screen.Clear()
	w, h := r.screen.Size()

	// Trails first so anything standing on them wins the cell.
	for pass := 0; pass < 2; pass++ {
		for _, e := range msg.Entities {
			if (e.Kind == "TRAIL") != (pass == 0) {
				continue
			}
			x, y, ok := Cell(msg.Viewport, w, h, e.Pos)
			if !ok {
				continue
			}
			r.screen.SetContent(x, y, Glyph(e), nil, Style(e))
		}
	}

	status := fmt.Sprintf("tick %d  workers %d  scouts %d  bases %d  food %d  trails %d",
		msg.Tick, msg.Population.Workers, msg.Population.Scouts, msg.Population.Bases,
		msg.Population.Resources, msg.Population.Trails)
	if msg.Truncated {
		status += "  (truncated)"
	}
	r.drawText(0, h-1, status, tcell.StyleDefault.Reverse(true))
	r.screen.Show()
}

// Notice writes a short message at the right end of the status line and shows it.
func (r *Renderer) Notice(msg string) {
	w, h := r.screen.Size()
	n := len([]rune(msg))
	if msg == "" || h <= 0 {
		return
	}
	r.drawText(max(w-n, 0), h-1, msg, tcell.StyleDefault.Reverse(true).Bold(true))
	r.screen.Show()
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	w, _ := r.screen.Size()
	for _, ch := range s {
		if x >= w {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func Glyph(e observerproto.EntityState) rune {
	switch e.Kind {
	case "AGENT":
		if e.Carried > 0 {
			return glyphCarrying
		}
		if e.AgentKind == "scout" {
			return glyphScout
		}
		return glyphWorker
	case "BASE":
		return glyphBase
	case "RESOURCE":
		return glyphResource
	case "TRAIL":
		return glyphTrail
	}
	return '?'
}

// Style colours agents and bases by owner and fades trails by alpha.
func Style(e observerproto.EntityState) tcell.Style {
	switch e.Kind {
	case "TRAIL":
		a := int32(math.Round(clamp01(e.Alpha) * 255))
		return tcell.StyleDefault.Foreground(tcell.NewRGBColor(a, a, a))
	case "RESOURCE":
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	}
	st := tcell.StyleDefault
	if e.Color != "" {
		if c := tcell.GetColor(e.Color); c != tcell.ColorDefault {
			st = st.Foreground(c)
		}
	}
	if e.Kind == "BASE" {
		st = st.Bold(true)
	}
	return st
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
