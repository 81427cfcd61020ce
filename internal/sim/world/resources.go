package world

import (
	"math"

	"antcolony.ai/internal/sim/geom"
)

// Resource is a food source. It stays in the world even when exhausted.
type Resource struct {
	id       string
	pos      geom.Vec2
	quantity float64
}

func (r *Resource) ID() string          { return r.id }
func (r *Resource) Kind() EntityKind    { return EntityResource }
func (r *Resource) Position() geom.Vec2 { return r.pos }
func (r *Resource) Quantity() float64   { return r.quantity }

func (r *Resource) Display() Display {
	return Display{Kind: EntityResource, Alpha: 100}
}

// Take removes up to capacity from the resource and returns the amount removed.
func (r *Resource) Take(capacity float64) float64 {
	if capacity <= 0 || r.quantity <= 0 {
		return 0
	}
	n := math.Min(capacity, r.quantity)
	r.quantity -= n
	return n
}

func (r *Resource) update(*tickEnv, []Entity) bool { return true }

// Base is a player's home. Agents deposit carried resources into its stock.
type Base struct {
	id     string
	pos    geom.Vec2
	owner  *Player
	size   float64
	health float64
	stock  float64
}

func (b *Base) ID() string          { return b.id }
func (b *Base) Kind() EntityKind    { return EntityBase }
func (b *Base) Position() geom.Vec2 { return b.pos }
func (b *Base) Owner() *Player      { return b.owner }
func (b *Base) Size() float64       { return b.size }
func (b *Base) Health() float64     { return b.health }
func (b *Base) Stock() float64      { return b.stock }

func (b *Base) Display() Display {
	id, color := ownerDisplay(b.owner)
	return Display{Kind: EntityBase, OwnerID: id, Color: color, Alpha: 100}
}

func (b *Base) deposit(amount float64) {
	if amount > 0 {
		b.stock += amount
	}
}

func (b *Base) update(*tickEnv, []Entity) bool { return true }
