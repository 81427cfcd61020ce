package world

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

// TickLogEntry is what one tick did. Together with the world config it is enough
// to replay a run: creations are re-applied before stepping and the digest compared.
type TickLogEntry struct {
	Tick          uint64            `json:"tick"`
	Creates       []RecordedCreate  `json:"creates,omitempty"`
	Deaths        []RecordedDeath   `json:"deaths,omitempty"`
	Deposits      []RecordedDeposit `json:"deposits,omitempty"`
	FoodDrawn     float64           `json:"food_drawn,omitempty"`
	TrailsCreated int               `json:"trails_created,omitempty"`
	TrailsMerged  int               `json:"trails_merged,omitempty"`
	TrailsExpired int               `json:"trails_expired,omitempty"`
	Population    Population        `json:"population"`
	Digest        string            `json:"digest"`
}

type CreateType string

const (
	CreateTypeBases     CreateType = "BASES"
	CreateTypeAgents    CreateType = "AGENTS"
	CreateTypeResources CreateType = "RESOURCES"
)

type RecordedCreate struct {
	Type CreateType `json:"type"`

	// BASES
	Players []Player `json:"players,omitempty"`
	Size    float64  `json:"size,omitempty"`
	Health  float64  `json:"health,omitempty"`

	// BASES and RESOURCES
	Positions [][2]float64 `json:"positions,omitempty"`

	// RESOURCES
	Sizes []float64 `json:"sizes,omitempty"`

	// AGENTS
	BaseID string `json:"base_id,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Count  int    `json:"count,omitempty"`
}

type RecordedDeath struct {
	AgentID string     `json:"agent_id"`
	Kind    AgentKind  `json:"kind"`
	OwnerID string     `json:"owner_id,omitempty"`
	Pos     [2]float64 `json:"pos"`
}

type RecordedDeposit struct {
	AgentID string  `json:"agent_id"`
	BaseID  string  `json:"base_id"`
	Amount  float64 `json:"amount"`
}

type Population struct {
	Workers   int `json:"workers"`
	Scouts    int `json:"scouts"`
	Bases     int `json:"bases"`
	Resources int `json:"resources"`
	Trails    int `json:"trails"`
}

func (p Population) Agents() int { return p.Workers + p.Scouts }

// Total is the size of the live collection.
func (p Population) Total() int { return p.Agents() + p.Bases + p.Resources + p.Trails }
