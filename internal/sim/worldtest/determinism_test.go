package worldtest

import (
	"testing"

	"antcolony.ai/internal/sim/geom"
)

func colony(h *Harness) {
	b := h.Base("P1", geom.V(0, 0))
	h.Agents(b, "worker", 10)
	h.Agents(b, "scout", 4)
	h.Resource(geom.V(9, 4), 30)
	h.Resource(geom.V(-12, -3), 30)
}

func TestDeterminism_LogsMatch(t *testing.T) {
	h1 := NewHarness(t, baseConfig())
	h2 := NewHarness(t, baseConfig())
	colony(h1)
	colony(h2)
	h1.StepFor(250)
	h2.StepFor(250)

	e1, e2 := h1.Entries(), h2.Entries()
	if len(e1) != len(e2) {
		t.Fatalf("entries %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i].Digest != e2[i].Digest || e1[i].Population != e2[i].Population {
			t.Fatalf("tick %d diverged", e1[i].Tick)
		}
	}
}

func TestDeterminism_ReplayFromLog(t *testing.T) {
	src := NewHarness(t, baseConfig())
	colony(src)
	for i := 0; i < 120; i++ {
		if i == 60 {
			src.Resource(geom.V(2, 20), 15)
		}
		src.Step()
	}

	dst := NewHarness(t, baseConfig())
	for _, e := range src.Entries() {
		if err := dst.W.ApplyCreates(e.Creates); err != nil {
			t.Fatalf("tick %d: %v", e.Tick, err)
		}
		if got := dst.Step(); got.Digest != e.Digest {
			t.Fatalf("tick %d: digest=%s want=%s", e.Tick, got.Digest, e.Digest)
		}
	}
}
