package worldtest

import (
	"testing"

	"antcolony.ai/internal/sim/geom"
	world "antcolony.ai/internal/sim/world"
)

// Harness is a small black-box test helper for driving a world via exported APIs:
// - Base/Agents/Resource create entities directly (the caller is the world goroutine)
// - Step/StepFor advance with StepOnce and keep every tick log entry
//
// It intentionally avoids touching world internals so tests can live outside the world package.
type Harness struct {
	T *testing.T
	W *world.World

	entries []world.TickLogEntry
}

func NewHarness(t *testing.T, cfg world.WorldConfig) *Harness {
	t.Helper()

	w, err := world.New(cfg)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	h := &Harness{T: t, W: w}
	w.SetTickLogger(h)
	return h
}

// WriteTick implements world.TickLogger.
func (h *Harness) WriteTick(e world.TickLogEntry) error {
	h.entries = append(h.entries, e)
	return nil
}

func (h *Harness) Base(playerID string, pos geom.Vec2) *world.Base {
	h.T.Helper()
	bs, err := h.W.CreateBases([]*world.Player{{ID: playerID, Name: playerID}}, []geom.Vec2{pos}, 1, 100)
	if err != nil {
		h.T.Fatalf("CreateBases: %v", err)
	}
	return bs[0]
}

func (h *Harness) Agents(b *world.Base, kind string, n int) []*world.Agent {
	h.T.Helper()
	as, err := h.W.CreateAgents(b, kind, n)
	if err != nil {
		h.T.Fatalf("CreateAgents: %v", err)
	}
	return as
}

func (h *Harness) Resource(pos geom.Vec2, size float64) *world.Resource {
	h.T.Helper()
	rs, err := h.W.CreateResources([]geom.Vec2{pos}, []float64{size})
	if err != nil {
		h.T.Fatalf("CreateResources: %v", err)
	}
	return rs[0]
}

func (h *Harness) Step() world.TickLogEntry {
	h.T.Helper()
	h.W.StepOnce()
	return h.Last()
}

func (h *Harness) StepFor(n int) {
	h.T.Helper()
	for i := 0; i < n; i++ {
		h.W.StepOnce()
	}
}

// Last returns the most recent tick log entry.
func (h *Harness) Last() world.TickLogEntry {
	h.T.Helper()
	if len(h.entries) == 0 {
		h.T.Fatalf("no ticks stepped yet")
	}
	return h.entries[len(h.entries)-1]
}

func (h *Harness) Entries() []world.TickLogEntry { return h.entries }

// Totals sums the per-tick food flows over every stepped tick.
func (h *Harness) Totals() (drawn, deposited float64, deaths int) {
	for _, e := range h.entries {
		drawn += e.FoodDrawn
		for _, d := range e.Deposits {
			deposited += d.Amount
		}
		deaths += len(e.Deaths)
	}
	return drawn, deposited, deaths
}
