package world

import (
	"fmt"
	"testing"

	"antcolony.ai/internal/sim/geom"
)

func newTestWorld(t *testing.T, mutate func(*WorldConfig)) *World {
	t.Helper()
	cfg := WorldConfig{
		ID:              "test",
		TickRateHz:      20,
		Seed:            42,
		InitialEnergy:   100,
		MoveEnergyCost:  0.05,
		DirectionMemory: 0.9,
		Worker:          Traits{FoodPreference: 1, ScentPreference: 2, DirectionalityPreference: 1},
		Scout:           Traits{FoodPreference: 2, ExplorationPreference: 1},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

func mustBase(t *testing.T, w *World, pos geom.Vec2) *Base {
	t.Helper()
	bs, err := w.CreateBases([]*Player{{ID: "P1", Name: "red", Color: "#c0392b"}}, []geom.Vec2{pos}, 1, 100)
	if err != nil {
		t.Fatalf("create base: %v", err)
	}
	return bs[0]
}

func mustAgents(t *testing.T, w *World, b *Base, kind string, n int) []*Agent {
	t.Helper()
	as, err := w.CreateAgents(b, kind, n)
	if err != nil {
		t.Fatalf("create agents: %v", err)
	}
	return as
}

func mustResource(t *testing.T, w *World, pos geom.Vec2, size float64) *Resource {
	t.Helper()
	rs, err := w.CreateResources([]geom.Vec2{pos}, []float64{size})
	if err != nil {
		t.Fatalf("create resource: %v", err)
	}
	return rs[0]
}

func ids(es []Entity) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID()
	}
	return out
}

// placeTrail drops a trail straight into the live collection, as if laid on an earlier tick.
func placeTrail(t *testing.T, w *World, pos geom.Vec2, strength float64) *Trail {
	t.Helper()
	tr := newTrail(fmt.Sprintf("T9%05d", len(w.objects)), nil, pos, strength, &w.cfg, w.CurrentTick())
	w.objects = append(w.objects, tr)
	w.rebuild()
	return tr
}
