package world

import "testing"

func TestWorldStats_RollingWindow(t *testing.T) {
	s := NewWorldStats(10, 30)
	if s.WindowTicks() != 30 {
		t.Fatalf("window=%d", s.WindowTicks())
	}
	s.Observe(0, TickLogEntry{Deposits: []RecordedDeposit{{Amount: 5}}, TrailsCreated: 2})
	s.Observe(15, TickLogEntry{Deaths: []RecordedDeath{{AgentID: "A1"}}, FoodDrawn: 3})

	got := s.Summarize(20)
	if got.Deposits != 1 || got.FoodDeposited != 5 || got.Deaths != 1 || got.TrailsCreated != 2 || got.FoodDrawn != 3 {
		t.Fatalf("summary=%+v", got)
	}

	// Bucket [0,10) falls out of the window.
	got = s.Summarize(35)
	if got.Deposits != 0 || got.Deaths != 1 {
		t.Fatalf("summary after rotation=%+v", got)
	}
}
