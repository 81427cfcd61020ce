package world

import "antcolony.ai/internal/sim/geom"

type EntityKind string

const (
	EntityAgent    EntityKind = "AGENT"
	EntityBase     EntityKind = "BASE"
	EntityResource EntityKind = "RESOURCE"
	EntityTrail    EntityKind = "TRAIL"
)

// Entity is anything placed in the world and owned by the World's live collection.
type Entity interface {
	ID() string
	Kind() EntityKind
	Position() geom.Vec2
	Display() Display

	// update advances the entity one tick in place. perceived is nil for everything
	// but agents; new trails go through env.emitTrail. Returning false drops the
	// entity from the next tick's collection.
	update(env *tickEnv, perceived []Entity) (alive bool)
}

// Player owns bases, agents and trails. Only used for display and filtering.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Display is the read-only view handed to renderers.
type Display struct {
	Kind      EntityKind `json:"kind"`
	AgentKind AgentKind  `json:"agent_kind,omitempty"`
	OwnerID   string     `json:"owner_id,omitempty"`
	Color     string     `json:"color,omitempty"`
	// Alpha is an opacity percentage in [20,100].
	Alpha float64 `json:"alpha"`
}

func ownerDisplay(p *Player) (id, color string) {
	if p == nil {
		return "", ""
	}
	return p.ID, p.Color
}
