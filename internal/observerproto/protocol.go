package observerproto

// Version is the observer protocol version.
const Version = "0.1"

// Viewport is an axis-aligned window onto the world, given by two opposite corners.
type Viewport struct {
	Min [2]float64 `json:"min"`
	Max [2]float64 `json:"max"`
}

// Client -> Server. First message on the observer WS connection, and can be re-sent to move the viewport.
type SubscribeMsg struct {
	Type            string   `json:"type"`
	ProtocolVersion string   `json:"protocol_version"`
	Viewport        Viewport `json:"viewport"`

	// Cap on entities per VIEW message. Trails are dropped first when over.
	MaxEntities int `json:"max_entities,omitempty"`
}

// HTTP response for GET /admin/v1/observer/bootstrap.
type BootstrapResponse struct {
	ProtocolVersion string       `json:"protocol_version"`
	WorldID         string       `json:"world_id"`
	Tick            uint64       `json:"tick"`
	WorldParams     WorldParams  `json:"world_params"`
	Players         []PlayerInfo `json:"players"`
}

type WorldParams struct {
	TickRateHz       int     `json:"tick_rate_hz"`
	Seed             uint64  `json:"seed"`
	WorkerRadius     float64 `json:"worker_radius"`
	ScoutRadius      float64 `json:"scout_radius"`
	TrailMaxStrength float64 `json:"trail_max_strength"`
}

type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	BaseID string `json:"base_id"`
}

// Server -> Client. Sent every tick with what lies inside the subscribed viewport.
type ViewMsg struct {
	Type            string   `json:"type"`
	ProtocolVersion string   `json:"protocol_version"`
	Tick            uint64   `json:"tick"`
	Viewport        Viewport `json:"viewport"`

	Entities  []EntityState `json:"entities"`
	Truncated bool          `json:"truncated,omitempty"`

	Population Population `json:"population"`
}

type EntityState struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	AgentKind string     `json:"agent_kind,omitempty"`
	OwnerID   string     `json:"owner_id,omitempty"`
	Color     string     `json:"color,omitempty"`
	Pos       [2]float64 `json:"pos"`
	Alpha     float64    `json:"alpha"`

	// Kind specific.
	State    string  `json:"state,omitempty"`
	Carried  float64 `json:"carried,omitempty"`
	Quantity float64 `json:"quantity,omitempty"`
	Strength float64 `json:"strength,omitempty"`
	Stock    float64 `json:"stock,omitempty"`
}

type Population struct {
	Workers   int `json:"workers"`
	Scouts    int `json:"scouts"`
	Bases     int `json:"bases"`
	Resources int `json:"resources"`
	Trails    int `json:"trails"`
}
