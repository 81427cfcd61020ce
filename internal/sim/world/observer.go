package world

import (
	"encoding/json"

	"antcolony.ai/internal/observerproto"
	"antcolony.ai/internal/sim/geom"
)

const defaultObserverMaxEntities = 4096

// ObserverJoinRequest registers a read-only observer session that receives one VIEW
// message per tick on TickOut. All observer state is maintained by the world loop goroutine.
type ObserverJoinRequest struct {
	SessionID string
	TickOut   chan []byte

	View        geom.Rect
	MaxEntities int
}

// ObserverSubscribeRequest moves an existing observer session's viewport.
type ObserverSubscribeRequest struct {
	SessionID string

	View        geom.Rect
	MaxEntities int
}

type observerClient struct {
	id      string
	tickOut chan []byte

	view        geom.Rect
	maxEntities int
}

func (w *World) ObserverJoin() chan<- ObserverJoinRequest           { return w.observerJoin }
func (w *World) ObserverSubscribe() chan<- ObserverSubscribeRequest { return w.observerSub }
func (w *World) ObserverLeave() chan<- string                       { return w.observerLeave }

func (w *World) handleObserverJoin(req ObserverJoinRequest) {
	if req.SessionID == "" || req.TickOut == nil {
		return
	}
	if old := w.observers[req.SessionID]; old != nil {
		close(old.tickOut)
	}
	w.observers[req.SessionID] = &observerClient{
		id:          req.SessionID,
		tickOut:     req.TickOut,
		view:        geom.RectFromCorners(req.View.Min, req.View.Max),
		maxEntities: clampMaxEntities(req.MaxEntities),
	}
}

func (w *World) handleObserverSubscribe(req ObserverSubscribeRequest) {
	c := w.observers[req.SessionID]
	if c == nil {
		return
	}
	c.view = geom.RectFromCorners(req.View.Min, req.View.Max)
	c.maxEntities = clampMaxEntities(req.MaxEntities)
}

func (w *World) handleObserverLeave(id string) {
	c := w.observers[id]
	if c == nil {
		return
	}
	close(c.tickOut)
	delete(w.observers, id)
}

func clampMaxEntities(n int) int {
	if n <= 0 || n > defaultObserverMaxEntities {
		return defaultObserverMaxEntities
	}
	return n
}

// stepObservers pushes this tick's view to every observer. Slow observers only
// ever see the latest tick.
func (w *World) stepObservers(nowTick uint64) {
	if len(w.observers) == 0 {
		return
	}
	pop := w.population()
	for _, c := range w.observers {
		msg := w.viewMsg(nowTick, c.view, c.maxEntities, pop)
		b, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		sendLatest(c.tickOut, b)
	}
}

// ViewMsg builds the observer view of a rectangle. It must be called from the world loop goroutine.
func (w *World) ViewMsg(view geom.Rect, maxEntities int) observerproto.ViewMsg {
	return w.viewMsg(w.tick.Load(), view, clampMaxEntities(maxEntities), w.population())
}

func (w *World) viewMsg(nowTick uint64, view geom.Rect, maxEntities int, pop Population) observerproto.ViewMsg {
	inView := w.QueryRectangle(view.Min, view.Max)

	// Trails go last so they are the first to be cut.
	ents := make([]observerproto.EntityState, 0, min(len(inView), maxEntities))
	var trails []*Trail
	for _, e := range inView {
		if t, ok := e.(*Trail); ok {
			trails = append(trails, t)
			continue
		}
		if len(ents) < maxEntities {
			ents = append(ents, w.entityState(e))
		}
	}
	for _, t := range trails {
		if len(ents) >= maxEntities {
			break
		}
		ents = append(ents, w.entityState(t))
	}

	return observerproto.ViewMsg{
		Type:            "VIEW",
		ProtocolVersion: observerproto.Version,
		Tick:            nowTick,
		Viewport:        observerproto.Viewport{Min: view.Min.Arr(), Max: view.Max.Arr()},
		Entities:        ents,
		Truncated:       len(inView) > len(ents),
		Population: observerproto.Population{
			Workers:   pop.Workers,
			Scouts:    pop.Scouts,
			Bases:     pop.Bases,
			Resources: pop.Resources,
			Trails:    pop.Trails,
		},
	}
}

func (w *World) entityState(e Entity) observerproto.EntityState {
	d := e.Display()
	st := observerproto.EntityState{
		ID:        e.ID(),
		Kind:      string(d.Kind),
		AgentKind: string(d.AgentKind),
		OwnerID:   d.OwnerID,
		Color:     d.Color,
		Pos:       e.Position().Arr(),
		Alpha:     d.Alpha,
	}
	switch v := e.(type) {
	case *Agent:
		st.State = string(v.State(w.cfg.MinEnergy))
		st.Carried = v.carried
	case *Resource:
		st.Quantity = v.quantity
	case *Trail:
		st.Strength = v.strength
	case *Base:
		st.Stock = v.stock
	}
	return st
}
