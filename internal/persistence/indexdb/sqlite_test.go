package indexdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"antcolony.ai/internal/sim/tuning"
	"antcolony.ai/internal/sim/world"
)

func TestSQLiteIndex_TicksDepositsDeaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index", "world.sqlite")
	idx, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := idx.UpsertConfig(world.WorldConfig{ID: "colony_1", TickRateHz: 20}, tuning.Defaults()); err != nil {
		t.Fatalf("upsert config: %v", err)
	}

	_ = idx.WriteTick(world.TickLogEntry{
		Tick:    0,
		Digest:  "d0",
		Creates: []world.RecordedCreate{{Type: world.CreateTypeAgents, BaseID: "B000001", Kind: "worker", Count: 3}},
	})
	_ = idx.WriteTick(world.TickLogEntry{
		Tick:       1,
		Digest:     "d1",
		Population: world.Population{Workers: 3, Bases: 1},
		Deposits: []world.RecordedDeposit{
			{AgentID: "A000001", BaseID: "B000001", Amount: 5},
			{AgentID: "A000002", BaseID: "B000001", Amount: 2.5},
		},
		Deaths: []world.RecordedDeath{{AgentID: "A000003", Kind: world.KindWorker, OwnerID: "P1"}},
	})
	// Close drains the queue and commits.
	if err := idx.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	idx, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer idx.Close()
	ctx := context.Background()

	tick, digest, ok, err := idx.LastTick(ctx)
	if err != nil || !ok || tick != 1 || digest != "d1" {
		t.Fatalf("last tick=%d digest=%q ok=%v err=%v", tick, digest, ok, err)
	}
	totals, err := idx.DepositTotals(ctx)
	if err != nil {
		t.Fatalf("deposit totals: %v", err)
	}
	if len(totals) != 1 || totals[0].Deposits != 2 || totals[0].Amount != 7.5 {
		t.Fatalf("totals=%+v", totals)
	}
	deaths, err := idx.DeathsByKind(ctx)
	if err != nil || deaths["worker"] != 1 {
		t.Fatalf("deaths=%v err=%v", deaths, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM creates WHERE type='AGENTS'`).Scan(&n); err != nil || n != 1 {
		t.Fatalf("creates=%d err=%v", n, err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM configs`).Scan(&n); err != nil || n != 2 {
		t.Fatalf("configs=%d err=%v", n, err)
	}
}

func TestSQLiteIndex_EmptyLastTick(t *testing.T) {
	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "w.sqlite"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer idx.Close()
	if _, _, ok, err := idx.LastTick(context.Background()); ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestSQLiteIndex_QueueDropStats(t *testing.T) {
	s := &SQLiteIndex{ch: make(chan req, 1)}
	_ = s.WriteTick(world.TickLogEntry{Tick: 1})
	_ = s.WriteTick(world.TickLogEntry{Tick: 2})

	st := s.Stats()
	if st.DropTickTotal != 1 {
		t.Fatalf("DropTickTotal=%d want=1", st.DropTickTotal)
	}
	if st.QueueDepth != 1 || st.QueueCapacity != 1 {
		t.Fatalf("queue stats mismatch: depth=%d cap=%d", st.QueueDepth, st.QueueCapacity)
	}
}

func TestSQLiteIndex_NilIsNoop(t *testing.T) {
	var s *SQLiteIndex
	if err := s.WriteTick(world.TickLogEntry{}); err != nil {
		t.Fatalf("err=%v", err)
	}
	if s.Stats() != (Stats{}) {
		t.Fatalf("stats on nil index")
	}
}
