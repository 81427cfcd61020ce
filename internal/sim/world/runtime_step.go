package world

import (
	"fmt"
	"math/rand/v2"
	"time"

	"antcolony.ai/internal/sim/geom"
)

// tickEnv is the per-tick context handed to entity updates.
type tickEnv struct {
	tick uint64
	cfg  *WorldConfig
	rng  *rand.Rand
	rec  *tickRecord
	w    *World

	// Trails emitted so far this tick. They are not in the index yet, so they are
	// checked here to avoid two agents dropping separate trails on the same spot.
	emitted []*Trail
}

type tickRecord struct {
	Deaths        []RecordedDeath
	Deposits      []RecordedDeposit
	FoodDrawn     float64
	TrailsCreated int
	TrailsMerged  int
	TrailsExpired int
}

func (env *tickEnv) emitTrail(owner *Player, pos geom.Vec2, strength float64) {
	for _, t := range env.emitted {
		if pos.Dist(t.pos) <= env.cfg.MaxDistToTrail {
			t.reinforce(strength, env.tick)
			env.rec.TrailsMerged++
			return
		}
	}
	id := fmt.Sprintf("T%06d", env.w.nextTrailNum.Add(1))
	t := newTrail(id, owner, pos, strength, env.cfg, env.tick)
	env.emitted = append(env.emitted, t)
	env.rec.TrailsCreated++
}

// Update advances the world by one tick.
func (w *World) Update() {
	w.step()
}

// StepOnce advances one tick and returns the tick number stepped and the resulting state digest.
// Intended for deterministic replays and tests.
func (w *World) StepOnce() (tick uint64, digest string) {
	entry := w.step()
	return entry.Tick, entry.Digest
}

func (w *World) step() TickLogEntry {
	stepStart := time.Now()
	nowTick := w.tick.Load()

	rec := &tickRecord{}
	env := &tickEnv{tick: nowTick, cfg: &w.cfg, rng: w.rng, rec: rec, w: w}

	// Agents first, in collection order, all querying the index built at the end
	// of the previous tick. Other entities are settled afterwards so that trail
	// expiry sees this tick's reinforcements.
	alive := make([]bool, len(w.objects))
	for i, o := range w.objects {
		a, ok := o.(*Agent)
		if !ok {
			continue
		}
		perceived := w.QueryRadius(a.pos, w.cfg.perceptionRadius(a.kind))
		alive[i] = a.update(env, perceived)
	}
	for i, o := range w.objects {
		if _, ok := o.(*Agent); ok {
			continue
		}
		alive[i] = o.update(env, nil)
	}

	next := make([]Entity, 0, len(w.objects)+len(env.emitted))
	for i, o := range w.objects {
		if alive[i] {
			next = append(next, o)
		}
	}
	for _, t := range env.emitted {
		next = append(next, t)
	}
	w.objects = next
	w.rebuild()

	pop := w.population()
	entry := TickLogEntry{
		Tick:          nowTick,
		Creates:       w.pendingCreates,
		Deaths:        rec.Deaths,
		Deposits:      rec.Deposits,
		FoodDrawn:     rec.FoodDrawn,
		TrailsCreated: rec.TrailsCreated,
		TrailsMerged:  rec.TrailsMerged,
		TrailsExpired: rec.TrailsExpired,
		Population:    pop,
		Digest:        w.stateDigest(nowTick),
	}
	w.pendingCreates = nil

	w.stats.Observe(nowTick, entry)
	if w.tickLogger != nil {
		_ = w.tickLogger.WriteTick(entry)
	}
	w.stepObservers(nowTick)

	nextTick := w.tick.Add(1)
	w.metrics.Store(WorldMetrics{
		Tick:             nextTick,
		Population:       pop,
		Stock:            w.totalStock(),
		StepMS:           float64(time.Since(stepStart).Microseconds()) / 1000.0,
		Observers:        len(w.observers),
		QueueDepths:      w.queueDepths(),
		StatsWindowTicks: w.stats.WindowTicks(),
		StatsWindow:      w.stats.Summarize(nowTick),
	})
	return entry
}

func (w *World) population() Population {
	var p Population
	for _, o := range w.objects {
		switch v := o.(type) {
		case *Agent:
			if v.kind == KindScout {
				p.Scouts++
			} else {
				p.Workers++
			}
		case *Base:
			p.Bases++
		case *Resource:
			p.Resources++
		case *Trail:
			p.Trails++
		}
	}
	return p
}

func (w *World) totalStock() float64 {
	s := 0.0
	for _, b := range w.Bases() {
		s += b.stock
	}
	return s
}
