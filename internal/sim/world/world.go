package world

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"antcolony.ai/internal/sim/geom"
)

// World owns every live entity and the spatial index built over them.
// It is single-threaded: Update and the Create* calls must come from one goroutine
// (the Run loop when the world is served). Other goroutines use the request
// channels or the *Async helpers.
type World struct {
	cfg WorldConfig
	rng *rand.Rand

	tick atomic.Uint64

	objects []Entity
	tree    *kdTree

	nextAgentNum    atomic.Uint64
	nextBaseNum     atomic.Uint64
	nextResourceNum atomic.Uint64
	nextTrailNum    atomic.Uint64

	// Creations applied since the last tick; flushed into the next tick log entry.
	pendingCreates []RecordedCreate

	createReq chan createReq
	stop      chan struct{}
	stopOnce  sync.Once

	observers     map[string]*observerClient
	observerJoin  chan ObserverJoinRequest
	observerSub   chan ObserverSubscribeRequest
	observerLeave chan string

	tickLogger TickLogger
	stats      *WorldStats
	metrics    atomic.Value
	roster     atomic.Value // []BaseOwner
}

// BaseOwner ties a player to the base it was given.
type BaseOwner struct {
	Player Player    `json:"player"`
	BaseID string    `json:"base_id"`
	Pos    geom.Vec2 `json:"pos"`
}

func New(cfg WorldConfig) (*World, error) {
	cfg.applyDefaults()
	if cfg.TickRateHz <= 0 {
		return nil, fmt.Errorf("%w: tick rate must be > 0", ErrBadRequest)
	}
	w := &World{
		cfg:           cfg,
		rng:           rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		tree:          buildKDTree(nil),
		createReq:     make(chan createReq, 64),
		stop:          make(chan struct{}),
		observers:     map[string]*observerClient{},
		observerJoin:  make(chan ObserverJoinRequest, 16),
		observerSub:   make(chan ObserverSubscribeRequest, 64),
		observerLeave: make(chan string, 16),
		stats:         NewWorldStats(uint64(cfg.StatsBucketTicks), uint64(cfg.StatsWindowTicks)),
	}
	w.metrics.Store(WorldMetrics{})
	w.roster.Store([]BaseOwner(nil))
	return w, nil
}

func (w *World) Config() WorldConfig        { return w.cfg }
func (w *World) CurrentTick() uint64        { return w.tick.Load() }
func (w *World) SetTickLogger(l TickLogger) { w.tickLogger = l }
func (w *World) Stats() *WorldStats         { return w.stats }
func (w *World) Len() int                   { return len(w.objects) }

// Objects returns the live collection. The slice is a copy; the entities are not.
func (w *World) Objects() []Entity {
	return append([]Entity(nil), w.objects...)
}

func (w *World) Agents() []*Agent       { return entitiesOf[*Agent](w.objects) }
func (w *World) Bases() []*Base         { return entitiesOf[*Base](w.objects) }
func (w *World) Resources() []*Resource { return entitiesOf[*Resource](w.objects) }
func (w *World) Trails() []*Trail       { return entitiesOf[*Trail](w.objects) }

func entitiesOf[T Entity](objs []Entity) []T {
	var out []T
	for _, o := range objs {
		if v, ok := o.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Entity looks an entity up by id.
func (w *World) Entity(id string) (Entity, bool) {
	for _, o := range w.objects {
		if o.ID() == id {
			return o, true
		}
	}
	return nil, false
}

// Roster lists every base and its owner. Safe to call from any goroutine.
func (w *World) Roster() []BaseOwner {
	r, _ := w.roster.Load().([]BaseOwner)
	return append([]BaseOwner(nil), r...)
}

func (w *World) Base(id string) (*Base, bool) {
	e, ok := w.Entity(id)
	if !ok {
		return nil, false
	}
	b, ok := e.(*Base)
	return b, ok
}

// CreateBases places one base per player. players and positions must have equal length.
func (w *World) CreateBases(players []*Player, positions []geom.Vec2, size, health float64) ([]*Base, error) {
	if len(players) != len(positions) {
		return nil, fmt.Errorf("%w: %d players for %d positions", ErrBadRequest, len(players), len(positions))
	}
	for i, p := range players {
		if p == nil || p.ID == "" {
			return nil, fmt.Errorf("%w: player %d has no id", ErrBadRequest, i)
		}
		if !positions[i].Finite() {
			return nil, fmt.Errorf("%w: base position %d is not finite", ErrBadRequest, i)
		}
	}
	out := make([]*Base, 0, len(players))
	roster := w.Roster()
	for i, p := range players {
		b := &Base{
			id:     fmt.Sprintf("B%06d", w.nextBaseNum.Add(1)),
			pos:    positions[i],
			owner:  p,
			size:   size,
			health: health,
		}
		out = append(out, b)
		w.objects = append(w.objects, b)
		roster = append(roster, BaseOwner{Player: *p, BaseID: b.id, Pos: b.pos})
	}
	w.roster.Store(roster)
	w.recordCreate(RecordedCreate{
		Type:      CreateTypeBases,
		Players:   derefPlayers(players),
		Positions: arrs(positions),
		Size:      size,
		Health:    health,
	})
	w.rebuild()
	return out, nil
}

// CreateAgents spawns count agents of kind at base. Nothing is created on error.
func (w *World) CreateAgents(base *Base, kind string, count int) ([]*Agent, error) {
	k, err := ParseAgentKind(kind)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, fmt.Errorf("%w: nil base", ErrUnknownBase)
	}
	if owned, ok := w.Base(base.id); !ok || owned != base {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBase, base.id)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative count %d", ErrBadRequest, count)
	}
	out := make([]*Agent, 0, count)
	for i := 0; i < count; i++ {
		a := newAgent(fmt.Sprintf("A%06d", w.nextAgentNum.Add(1)), k, base, &w.cfg)
		out = append(out, a)
		w.objects = append(w.objects, a)
	}
	w.recordCreate(RecordedCreate{Type: CreateTypeAgents, BaseID: base.id, Kind: string(k), Count: count})
	w.rebuild()
	return out, nil
}

// CreateResources places food sources. positions and sizes must have equal length.
func (w *World) CreateResources(positions []geom.Vec2, sizes []float64) ([]*Resource, error) {
	if len(positions) != len(sizes) {
		return nil, fmt.Errorf("%w: %d positions for %d sizes", ErrBadRequest, len(positions), len(sizes))
	}
	for i, s := range sizes {
		if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: resource size %d is %v", ErrBadRequest, i, s)
		}
		if !positions[i].Finite() {
			return nil, fmt.Errorf("%w: resource position %d is not finite", ErrBadRequest, i)
		}
	}
	out := make([]*Resource, 0, len(sizes))
	for i, s := range sizes {
		r := &Resource{
			id:       fmt.Sprintf("R%06d", w.nextResourceNum.Add(1)),
			pos:      positions[i],
			quantity: s,
		}
		out = append(out, r)
		w.objects = append(w.objects, r)
	}
	w.recordCreate(RecordedCreate{Type: CreateTypeResources, Positions: arrs(positions), Sizes: append([]float64(nil), sizes...)})
	w.rebuild()
	return out, nil
}

// rebuild replaces the spatial index with a fresh one over the current collection.
func (w *World) rebuild() {
	pts := make([]geom.Vec2, len(w.objects))
	for i, o := range w.objects {
		pts[i] = o.Position()
	}
	w.tree = buildKDTree(pts)
}

func (w *World) entitiesAt(idx []int) []Entity {
	if len(idx) == 0 {
		return nil
	}
	out := make([]Entity, len(idx))
	for i, j := range idx {
		out[i] = w.objects[j]
	}
	return out
}

// NearestK returns the k entities closest to pos and their Euclidean distances,
// nearest first. k larger than the population returns everything.
func (w *World) NearestK(pos geom.Vec2, k int) ([]Entity, []float64) {
	idx, dist := w.tree.nearest(pos, k)
	return w.entitiesAt(idx), dist
}

// QueryRadius returns every entity within Euclidean distance radius of center.
func (w *World) QueryRadius(center geom.Vec2, radius float64) []Entity {
	return w.entitiesAt(w.tree.within(center, radius, false))
}

// QuerySquare returns every entity within Chebyshev distance halfExtent of center.
func (w *World) QuerySquare(center geom.Vec2, halfExtent float64) []Entity {
	return w.entitiesAt(w.tree.within(center, halfExtent, true))
}

// QueryRectangle returns every entity inside the box spanned by two opposite corners.
// It narrows a square query around the box centre down to the exact box. The square
// takes the whole longest side as its half-extent: with half of it, rounding in the
// centre can leave points on the box edge outside the square.
func (w *World) QueryRectangle(topLeft, bottomRight geom.Vec2) []Entity {
	r := geom.RectFromCorners(topLeft, bottomRight)
	superset := w.QuerySquare(r.Center(), r.LongestSide())
	out := superset[:0:0]
	for _, e := range superset {
		if r.Contains(e.Position()) {
			out = append(out, e)
		}
	}
	return out
}

// At returns the entities sitting exactly on pos.
func (w *World) At(pos geom.Vec2) []Entity {
	return w.QueryRadius(pos, 0)
}

func (w *World) recordCreate(c RecordedCreate) {
	w.pendingCreates = append(w.pendingCreates, c)
}

func derefPlayers(ps []*Player) []Player {
	out := make([]Player, len(ps))
	for i, p := range ps {
		out[i] = *p
	}
	return out
}

func arrs(vs []geom.Vec2) [][2]float64 {
	out := make([][2]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Arr()
	}
	return out
}
