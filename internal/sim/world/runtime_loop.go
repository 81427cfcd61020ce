package world

import (
	"context"
	"fmt"
	"time"

	"antcolony.ai/internal/sim/geom"
)

// Run drives the world at the configured tick rate until ctx is cancelled or Stop is called.
// Creation and observer requests are applied between ticks.
func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.createReq:
			w.handleCreateReq(req)
		case req := <-w.observerJoin:
			w.handleObserverJoin(req)
		case req := <-w.observerSub:
			w.handleObserverSubscribe(req)
		case id := <-w.observerLeave:
			w.handleObserverLeave(id)
		case <-ticker.C:
			w.step()
		}
	}
}

func (w *World) Stop() { w.stopOnce.Do(func() { close(w.stop) }) }

func (w *World) ID() string {
	if w == nil {
		return ""
	}
	return w.cfg.ID
}

func (w *World) TickRateHz() int {
	if w == nil {
		return 0
	}
	return w.cfg.TickRateHz
}

type createReq struct {
	// Ctx is the caller's context; the loop skips requests whose caller already gave up.
	Ctx  context.Context
	Type CreateType

	Players   []*Player
	Positions []geom.Vec2
	Size      float64
	Health    float64

	BaseID string
	Kind   string
	Count  int

	Sizes []float64

	Resp chan createResp
}

type createResp struct {
	IDs []string
	Err error
}

// CreateBasesAsync queues a CreateBases call for the world loop and waits for its result.
func (w *World) CreateBasesAsync(ctx context.Context, players []*Player, positions []geom.Vec2, size, health float64) ([]string, error) {
	return w.requestCreate(ctx, createReq{Type: CreateTypeBases, Players: players, Positions: positions, Size: size, Health: health})
}

// CreateAgentsAsync queues a CreateAgents call for the world loop and waits for its result.
func (w *World) CreateAgentsAsync(ctx context.Context, baseID, kind string, count int) ([]string, error) {
	return w.requestCreate(ctx, createReq{Type: CreateTypeAgents, BaseID: baseID, Kind: kind, Count: count})
}

// CreateResourcesAsync queues a CreateResources call for the world loop and waits for its result.
func (w *World) CreateResourcesAsync(ctx context.Context, positions []geom.Vec2, sizes []float64) ([]string, error) {
	return w.requestCreate(ctx, createReq{Type: CreateTypeResources, Positions: positions, Sizes: sizes})
}

func (w *World) requestCreate(ctx context.Context, req createReq) ([]string, error) {
	if w == nil {
		return nil, ErrStopped
	}
	req.Ctx = ctx
	req.Resp = make(chan createResp, 1)
	select {
	case w.createReq <- req:
	case <-w.stop:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-req.Resp:
		return r.IDs, r.Err
	case <-w.stop:
		return nil, ErrStopped
	case <-ctx.Done():
		// The loop may have applied the request just as the deadline hit.
		select {
		case r := <-req.Resp:
			return r.IDs, r.Err
		default:
			return nil, ctx.Err()
		}
	}
}

func (w *World) handleCreateReq(req createReq) {
	if req.Ctx != nil && req.Ctx.Err() != nil {
		req.respond(createResp{Err: req.Ctx.Err()})
		return
	}
	var resp createResp
	switch req.Type {
	case CreateTypeBases:
		bs, err := w.CreateBases(req.Players, req.Positions, req.Size, req.Health)
		resp = createResp{IDs: idsOf(bs), Err: err}
	case CreateTypeAgents:
		b, ok := w.Base(req.BaseID)
		if !ok {
			// Kind errors take precedence, as with a direct call.
			if _, err := ParseAgentKind(req.Kind); err != nil {
				resp.Err = err
			} else {
				resp.Err = fmt.Errorf("%w: %s", ErrUnknownBase, req.BaseID)
			}
			break
		}
		as, err := w.CreateAgents(b, req.Kind, req.Count)
		resp = createResp{IDs: idsOf(as), Err: err}
	case CreateTypeResources:
		rs, err := w.CreateResources(req.Positions, req.Sizes)
		resp = createResp{IDs: idsOf(rs), Err: err}
	default:
		resp.Err = fmt.Errorf("%w: unknown create type %q", ErrBadRequest, req.Type)
	}
	req.respond(resp)
}

func (req createReq) respond(resp createResp) {
	if req.Resp == nil {
		return
	}
	select {
	case req.Resp <- resp:
	default:
	}
}

func idsOf[T Entity](es []T) []string {
	if len(es) == 0 {
		return nil
	}
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID()
	}
	return out
}

func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
