package world

import (
	"math"

	"antcolony.ai/internal/sim/geom"
)

// Trail is a scent mark laid by returning agents.
type Trail struct {
	id       string
	pos      geom.Vec2
	owner    *Player
	strength float64
	max      float64
	decay    float64

	lastReinforced uint64
}

func (t *Trail) ID() string          { return t.id }
func (t *Trail) Kind() EntityKind    { return EntityTrail }
func (t *Trail) Position() geom.Vec2 { return t.pos }
func (t *Trail) Owner() *Player      { return t.owner }
func (t *Trail) Strength() float64   { return t.strength }
func (t *Trail) Decay() float64      { return t.decay }

// Alpha maps strength onto an opacity percentage that never drops below 20.
func (t *Trail) Alpha() float64 {
	if t.max <= 0 {
		return 100
	}
	return math.Min(100, t.strength/t.max*100+20)
}

func (t *Trail) Display() Display {
	id, color := ownerDisplay(t.owner)
	return Display{Kind: EntityTrail, OwnerID: id, Color: color, Alpha: t.Alpha()}
}

func (t *Trail) reinforce(amount float64, tick uint64) {
	if amount > 0 {
		t.strength = math.Min(t.max, t.strength+amount)
	}
	t.lastReinforced = tick
}

// update is evaluated after every agent has moved, so reinforcement in the same tick counts.
func (t *Trail) update(env *tickEnv, _ []Entity) bool {
	if exp := env.cfg.TrailExpiryTicks; exp > 0 && env.tick >= t.lastReinforced+uint64(exp) {
		env.rec.TrailsExpired++
		return false
	}
	return true
}

func newTrail(id string, owner *Player, pos geom.Vec2, strength float64, cfg *WorldConfig, tick uint64) *Trail {
	return &Trail{
		id:             id,
		pos:            pos,
		owner:          owner,
		strength:       geom.Clamp(strength, cfg.TrailMinStrength, cfg.TrailMaxStrength),
		max:            cfg.TrailMaxStrength,
		decay:          cfg.TrailDecay,
		lastReinforced: tick,
	}
}
