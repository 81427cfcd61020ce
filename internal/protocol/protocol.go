package protocol

import "encoding/json"

const Version = "1.0"

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// POST /admin/v1/agents
type CreateAgentsReq struct {
	BaseID string `json:"base_id"`
	Kind   string `json:"kind"`
	Count  int    `json:"count"`
}

// POST /admin/v1/resources
type CreateResourcesReq struct {
	Resources []ResourceSpec `json:"resources"`
}

type ResourceSpec struct {
	Pos  [2]float64 `json:"pos"`
	Size float64    `json:"size"`
}

// POST /admin/v1/bases
type CreateBasesReq struct {
	Bases  []BaseSpec `json:"bases"`
	Size   float64    `json:"size,omitempty"`
	Health float64    `json:"health,omitempty"`
}

type BaseSpec struct {
	Player PlayerSpec `json:"player"`
	Pos    [2]float64 `json:"pos"`
}

type PlayerSpec struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// CreateResp answers every admin create call. Code is one of the E_* codes when OK is false.
type CreateResp struct {
	OK      bool     `json:"ok"`
	IDs     []string `json:"ids,omitempty"`
	Tick    uint64   `json:"tick"`
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message,omitempty"`
}
