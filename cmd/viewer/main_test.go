package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"antcolony.ai/internal/sim/geom"
	"antcolony.ai/internal/sim/tuning"
	"antcolony.ai/internal/sim/world"
)

func newTestViewer(t *testing.T) *viewer {
	t.Helper()
	return newTestViewerWith(t, tuning.Defaults().Scenario)
}

func newTestViewerWith(t *testing.T, sc tuning.ScenarioTuning) *viewer {
	t.Helper()
	w, err := world.New(world.ConfigFromTuning("viewer_test", tuning.Defaults()))
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	if err := w.SeedScenario(sc); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	s.SetSize(40, 11)
	t.Cleanup(s.Fini)
	return newViewer(w, s, 1)
}

func TestViewer_View(t *testing.T) {
	v := newTestViewer(t)
	r := v.view()
	if r.Min != geom.V(-20, -5) || r.Max != geom.V(20, 5) {
		t.Fatalf("view=%+v", r)
	}
	v.draw()
	// Agents start on the base and may be drawn over it.
	c, _, _, _ := v.screen.GetContent(20, 5)
	if c != 'B' && c != 'w' && c != 's' {
		t.Fatalf("centre cell=%q want base or agent", c)
	}
}

func TestViewer_Keys(t *testing.T) {
	v := newTestViewer(t)
	agents := len(v.w.Agents())

	v.handleKey(tcell.KeyRight, 0)
	if v.center.X <= 0 {
		t.Fatalf("right did not pan: %+v", v.center)
	}
	v.handleKey(tcell.KeyUp, 0)
	if v.center.Y >= 0 {
		t.Fatalf("up did not pan: %+v", v.center)
	}
	v.handleKey(tcell.KeyRune, '+')
	if v.cellSize != 0.5 {
		t.Fatalf("zoom in: cell=%v", v.cellSize)
	}

	v.handleKey(tcell.KeyRune, 'w')
	v.handleKey(tcell.KeyRune, 's')
	if got := len(v.w.Agents()); got != agents+2 {
		t.Fatalf("agents=%d want=%d", got, agents+2)
	}
	if !strings.HasPrefix(v.notice, "spawned A") {
		t.Fatalf("notice=%q", v.notice)
	}

	if !v.handleKey(tcell.KeyRune, 'x') {
		t.Fatalf("unbound key should not quit")
	}
	if v.handleKey(tcell.KeyRune, 'q') {
		t.Fatalf("q should quit")
	}
	if v.handleKey(tcell.KeyEscape, 0) {
		t.Fatalf("esc should quit")
	}
}

func TestViewer_SpawnWithoutBaseReported(t *testing.T) {
	v := newTestViewerWith(t, tuning.ScenarioTuning{})
	v.handleKey(tcell.KeyRune, 'w')
	if len(v.w.Agents()) != 0 {
		t.Fatalf("agents created without a base")
	}
	if !strings.Contains(v.notice, "no base") {
		t.Fatalf("notice=%q", v.notice)
	}

	v.draw()
	w, h := v.screen.Size()
	c, _, _, _ := v.screen.GetContent(w-1, h-1)
	if want := v.notice[len(v.notice)-1]; c != rune(want) {
		t.Fatalf("last status cell=%q want %q", c, want)
	}
}
