package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"antcolony.ai/internal/persistence/indexdb"
	"antcolony.ai/internal/protocol"
	"antcolony.ai/internal/sim/geom"
	"antcolony.ai/internal/sim/world"
	"antcolony.ai/internal/transport/observer"
)

const maxAdminBody = 1 << 20

// adminAPI serves the loopback-only admin endpoints. None of them bypass the
// world loop: creates are queued and applied between ticks.
type adminAPI struct {
	w      *world.World
	idx    *indexdb.SQLiteIndex
	logger *log.Logger
}

func (a *adminAPI) register(mux *http.ServeMux) {
	mux.HandleFunc("/admin/v1/state", a.loopbackOnly(a.handleState))
	mux.HandleFunc("/admin/v1/agents", a.loopbackOnly(a.handleCreateAgents))
	mux.HandleFunc("/admin/v1/resources", a.loopbackOnly(a.handleCreateResources))
	mux.HandleFunc("/admin/v1/bases", a.loopbackOnly(a.handleCreateBases))
	mux.HandleFunc("/admin/v1/index/deposits", a.loopbackOnly(a.handleDeposits))

	obsSrv := observer.NewServer(a.w, a.logger)
	mux.HandleFunc("/admin/v1/observer/bootstrap", obsSrv.BootstrapHandler())
	mux.HandleFunc("/admin/v1/observer/ws", obsSrv.WSHandler())
}

func (a *adminAPI) loopbackOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !observer.IsLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		h(rw, r)
	}
}

func (a *adminAPI) handleState(rw http.ResponseWriter, r *http.Request) {
	resp := struct {
		WorldID string             `json:"world_id"`
		Tick    uint64             `json:"tick"`
		Metrics world.WorldMetrics `json:"metrics"`
		Roster  []world.BaseOwner  `json:"roster"`
		Index   indexdb.Stats      `json:"index"`
	}{
		WorldID: a.w.ID(),
		Tick:    a.w.CurrentTick(),
		Metrics: a.w.Metrics(),
		Roster:  a.w.Roster(),
		Index:   a.idx.Stats(),
	}
	writeJSON(rw, http.StatusOK, resp)
}

func (a *adminAPI) handleCreateAgents(rw http.ResponseWriter, r *http.Request) {
	var req protocol.CreateAgentsReq
	if !a.decode(rw, r, protocol.SchemaCreateAgents, &req) {
		return
	}
	a.create(rw, r, func(ctx context.Context) ([]string, error) {
		return a.w.CreateAgentsAsync(ctx, req.BaseID, req.Kind, req.Count)
	})
}

func (a *adminAPI) handleCreateResources(rw http.ResponseWriter, r *http.Request) {
	var req protocol.CreateResourcesReq
	if !a.decode(rw, r, protocol.SchemaCreateResources, &req) {
		return
	}
	positions := make([]geom.Vec2, len(req.Resources))
	sizes := make([]float64, len(req.Resources))
	for i, rs := range req.Resources {
		positions[i] = geom.FromArr(rs.Pos)
		sizes[i] = rs.Size
	}
	a.create(rw, r, func(ctx context.Context) ([]string, error) {
		return a.w.CreateResourcesAsync(ctx, positions, sizes)
	})
}

func (a *adminAPI) handleCreateBases(rw http.ResponseWriter, r *http.Request) {
	var req protocol.CreateBasesReq
	if !a.decode(rw, r, protocol.SchemaCreateBases, &req) {
		return
	}
	players := make([]*world.Player, len(req.Bases))
	positions := make([]geom.Vec2, len(req.Bases))
	for i, b := range req.Bases {
		players[i] = &world.Player{ID: b.Player.ID, Name: b.Player.Name, Color: b.Player.Color}
		positions[i] = geom.FromArr(b.Pos)
	}
	size, health := req.Size, req.Health
	if size <= 0 {
		size = 1
	}
	if health <= 0 {
		health = 100
	}
	a.create(rw, r, func(ctx context.Context) ([]string, error) {
		return a.w.CreateBasesAsync(ctx, players, positions, size, health)
	})
}

func (a *adminAPI) handleDeposits(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if a.idx == nil {
		http.Error(rw, "index disabled", http.StatusNotFound)
		return
	}
	totals, err := a.idx.DepositTotals(r.Context())
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}
	deaths, err := a.idx.DeathsByKind(r.Context())
	if err != nil {
		http.Error(rw, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(rw, http.StatusOK, map[string]any{
		"deposits": totals,
		"deaths":   deaths,
	})
}

// decode reads a POST body and validates it against schema. It writes the error
// response itself and reports whether the handler should continue.
func (a *adminAPI) decode(rw http.ResponseWriter, r *http.Request, schema string, out any) bool {
	if r.Method != http.MethodPost {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxAdminBody))
	if err != nil {
		writeJSON(rw, http.StatusBadRequest, protocol.CreateResp{Code: protocol.ErrProtoBadRequest, Message: err.Error()})
		return false
	}
	if err := protocol.DecodeValid(schema, raw, out); err != nil {
		writeJSON(rw, http.StatusBadRequest, protocol.CreateResp{Code: protocol.ErrProtoBadRequest, Message: err.Error()})
		return false
	}
	return true
}

func (a *adminAPI) create(rw http.ResponseWriter, r *http.Request, fn func(context.Context) ([]string, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	ids, err := fn(ctx)
	if err != nil {
		status, code := errorCode(err)
		if status == http.StatusInternalServerError {
			a.logger.Printf("admin create: %v", err)
		}
		writeJSON(rw, status, protocol.CreateResp{Tick: a.w.CurrentTick(), Code: code, Message: err.Error()})
		return
	}
	writeJSON(rw, http.StatusOK, protocol.CreateResp{OK: true, IDs: ids, Tick: a.w.CurrentTick()})
}

func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, world.ErrInvalidKind):
		return http.StatusBadRequest, protocol.ErrInvalidKind
	case errors.Is(err, world.ErrUnknownBase):
		return http.StatusNotFound, protocol.ErrNotFound
	case errors.Is(err, world.ErrBadRequest):
		return http.StatusBadRequest, protocol.ErrBadRequest
	case errors.Is(err, world.ErrStopped):
		return http.StatusServiceUnavailable, protocol.ErrWorldStopped
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, protocol.ErrWorldBusy
	default:
		return http.StatusInternalServerError, protocol.ErrInternal
	}
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}
