package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	persistlog "antcolony.ai/internal/persistence/log"
	"antcolony.ai/internal/sim/tuning"
	"antcolony.ai/internal/sim/world"
)

// recordRun runs a seeded world for n ticks the way the server does and returns its run dir.
func recordRun(t *testing.T, n int, tamper func(*world.World, int)) string {
	t.Helper()
	dir := t.TempDir()
	w, err := world.New(world.ConfigFromTuning("replay_test", tuning.Defaults()))
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	if err := persistlog.WriteRunHeader(dir, persistlog.RunHeader{WorldID: "replay_test", Config: w.Config()}); err != nil {
		t.Fatalf("header: %v", err)
	}
	tl := persistlog.NewTickLogger(dir)
	w.SetTickLogger(tl)
	if err := w.SeedScenario(tuning.Defaults().Scenario); err != nil {
		t.Fatalf("seed: %v", err)
	}
	for i := 0; i < n; i++ {
		if tamper != nil {
			tamper(w, i)
		}
		w.Update()
	}
	if err := tl.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return dir
}

func TestReplayRun_Verifies(t *testing.T) {
	dir := recordRun(t, 40, func(w *world.World, i int) {
		if i == 15 {
			if _, err := w.CreateAgents(w.Bases()[0], "scout", 3); err != nil {
				t.Fatalf("agents: %v", err)
			}
		}
	})
	res, err := replayRun(dir, 0, 0)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if res.Checked != 40 || res.LastTick != 39 {
		t.Fatalf("res=%+v", res)
	}
	def := tuning.Defaults().Scenario.Colonies[0]
	if res.Objects < def.Workers+def.Scouts+3 {
		t.Fatalf("objects=%d", res.Objects)
	}
}

func TestReplayRun_Window(t *testing.T) {
	dir := recordRun(t, 30, nil)
	res, err := replayRun(dir, 10, 19)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if res.Checked != 10 || res.LastTick != 19 {
		t.Fatalf("res=%+v", res)
	}
}

func TestReplayRun_DetectsDivergence(t *testing.T) {
	dir := recordRun(t, 20, nil)

	// Same log, different seed: the first tick with movement diverges.
	hdr, err := persistlog.ReadRunHeader(dir)
	if err != nil {
		t.Fatalf("header: %v", err)
	}
	hdr.Config.Seed++
	if err := persistlog.WriteRunHeader(dir, hdr); err != nil {
		t.Fatalf("rewrite header: %v", err)
	}
	if _, err := replayRun(dir, 0, 0); err == nil || !strings.Contains(err.Error(), "digest mismatch") {
		t.Fatalf("err=%v want digest mismatch", err)
	}
}

func TestReplayRun_MissingTicks(t *testing.T) {
	dir := t.TempDir()
	if err := persistlog.WriteRunHeader(dir, persistlog.RunHeader{WorldID: "x"}); err != nil {
		t.Fatalf("header: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "ticks"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := replayRun(dir, 0, 0); err == nil {
		t.Fatalf("expected error for empty tick dir")
	}
}
