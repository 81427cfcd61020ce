package worldtest

import (
	"testing"

	"antcolony.ai/internal/sim/geom"
	world "antcolony.ai/internal/sim/world"
)

func TestForaging_FoodIsConserved(t *testing.T) {
	h := NewHarness(t, baseConfig())
	b1 := h.Base("P1", geom.V(0, 0))
	b2 := h.Base("P2", geom.V(40, 0))
	h.Agents(b1, "worker", 8)
	h.Agents(b1, "scout", 2)
	h.Agents(b2, "worker", 8)
	foods := []*world.Resource{
		h.Resource(geom.V(6, 2), 40),
		h.Resource(geom.V(34, -3), 40),
		h.Resource(geom.V(20, 12), 25),
	}
	initial := 0.0
	for _, f := range foods {
		initial += f.Quantity()
	}

	h.StepFor(400)

	drawn, deposited, deaths := h.Totals()
	if deaths != 0 {
		t.Fatalf("deaths=%d with free movement", deaths)
	}
	if drawn == 0 {
		t.Fatalf("no food was ever drawn")
	}

	remaining := 0.0
	for _, f := range foods {
		remaining += f.Quantity()
	}
	if !approx(initial-remaining, drawn) {
		t.Fatalf("resources lost %v but log drew %v", initial-remaining, drawn)
	}

	carried := 0.0
	for _, a := range h.W.Agents() {
		carried += a.Carried()
	}
	if !approx(drawn, deposited+carried) {
		t.Fatalf("drawn=%v deposited=%v carried=%v", drawn, deposited, carried)
	}

	stock := b1.Stock() + b2.Stock()
	if !approx(stock, deposited) {
		t.Fatalf("base stock=%v deposits=%v", stock, deposited)
	}
}

func TestForaging_DepositsGoHome(t *testing.T) {
	h := NewHarness(t, baseConfig())
	b1 := h.Base("P1", geom.V(0, 0))
	b2 := h.Base("P2", geom.V(-30, 0))
	mine := map[string]bool{}
	for _, a := range h.Agents(b1, "worker", 6) {
		mine[a.ID()] = true
	}
	h.Agents(b2, "worker", 6)
	h.Resource(geom.V(4, 0), 100)
	h.Resource(geom.V(-26, 0), 100)

	h.StepFor(200)
	n := 0
	for _, e := range h.Entries() {
		for _, d := range e.Deposits {
			want := b2.ID()
			if mine[d.AgentID] {
				want = b1.ID()
			}
			if d.BaseID != want {
				t.Fatalf("tick %d: agent %s deposited at %s want %s", e.Tick, d.AgentID, d.BaseID, want)
			}
			n++
		}
	}
	if n == 0 {
		t.Fatalf("no deposits in 200 ticks")
	}
}

func TestForaging_ExhaustionKillsAndLogs(t *testing.T) {
	cfg := baseConfig()
	cfg.InitialEnergy = 2
	cfg.MoveEnergyCost = 1
	h := NewHarness(t, cfg)
	b := h.Base("P1", geom.V(0, 0))
	h.Agents(b, "scout", 4)

	h.StepFor(10)
	_, _, deaths := h.Totals()
	if deaths != 4 {
		t.Fatalf("deaths=%d want=4", deaths)
	}
	if got := len(h.W.Agents()); got != 0 {
		t.Fatalf("agents alive=%d want=0", got)
	}
	if pop := h.Last().Population; pop.Agents() != 0 || pop.Bases != 1 {
		t.Fatalf("population=%+v", pop)
	}
}
