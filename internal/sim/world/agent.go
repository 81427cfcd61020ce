package world

import (
	"fmt"
	"strings"

	"antcolony.ai/internal/sim/geom"
)

type AgentKind string

const (
	KindWorker AgentKind = "worker"
	KindScout  AgentKind = "scout"
)

// ParseAgentKind accepts "worker" or "scout" (case-insensitive).
func ParseAgentKind(s string) (AgentKind, error) {
	switch AgentKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindWorker:
		return KindWorker, nil
	case KindScout:
		return KindScout, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Traits are the exponents applied to normalised target features when an agent
// picks between several candidates. An exponent of 0 turns the feature off.
type Traits struct {
	FoodPreference           float64 `json:"food_preference"`
	ScentPreference          float64 `json:"scent_preference"`
	DirectionalityPreference float64 `json:"directionality_preference"`
	ExplorationPreference    float64 `json:"exploration_preference"`
}

func (t Traits) sanitized() Traits {
	pos := func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	}
	return Traits{
		FoodPreference:           pos(t.FoodPreference),
		ScentPreference:          pos(t.ScentPreference),
		DirectionalityPreference: pos(t.DirectionalityPreference),
		ExplorationPreference:    pos(t.ExplorationPreference),
	}
}

// AgentState is derived from what the agent carries and how much energy it has left.
type AgentState string

const (
	StateSeeking   AgentState = "SEEKING"
	StateReturning AgentState = "RETURNING"
	StateDead      AgentState = "DEAD"
)

type Agent struct {
	id    string
	kind  AgentKind
	owner *Player
	home  *Base

	pos       geom.Vec2
	direction geom.Vec2
	memory    float64

	energy        float64
	carried       float64
	capacity      float64
	trailStrength float64

	traits Traits
}

func newAgent(id string, kind AgentKind, home *Base, cfg *WorldConfig) *Agent {
	return &Agent{
		id:        id,
		kind:      kind,
		owner:     home.owner,
		home:      home,
		pos:       home.pos,
		direction: cfg.InitialDirection,
		memory:    cfg.DirectionMemory,
		energy:    cfg.InitialEnergy,
		capacity:  cfg.LoadingCapacity,
		traits:    cfg.traits(kind),
	}
}

func (a *Agent) ID() string               { return a.id }
func (a *Agent) Kind() EntityKind         { return EntityAgent }
func (a *Agent) AgentKind() AgentKind     { return a.kind }
func (a *Agent) Position() geom.Vec2      { return a.pos }
func (a *Agent) Direction() geom.Vec2     { return a.direction }
func (a *Agent) Owner() *Player           { return a.owner }
func (a *Agent) Home() *Base              { return a.home }
func (a *Agent) Energy() float64          { return a.energy }
func (a *Agent) Carried() float64         { return a.carried }
func (a *Agent) TrailStrength() float64   { return a.trailStrength }
func (a *Agent) Traits() Traits           { return a.traits }
func (a *Agent) DirectionMemory() float64 { return a.memory }

func (a *Agent) State(minEnergy float64) AgentState {
	switch {
	case a.energy <= minEnergy:
		return StateDead
	case a.carried > 0:
		return StateReturning
	default:
		return StateSeeking
	}
}

func (a *Agent) Display() Display {
	id, color := ownerDisplay(a.owner)
	return Display{Kind: EntityAgent, AgentKind: a.kind, OwnerID: id, Color: color, Alpha: 100}
}
