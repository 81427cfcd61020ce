package world

import (
	"math"

	"antcolony.ai/internal/sim/geom"
	"antcolony.ai/internal/sim/tuning"
)

type WorldConfig struct {
	ID         string
	TickRateHz int
	Seed       uint64

	// Agent model.
	InitialEnergy    float64
	MinEnergy        float64
	MoveEnergyCost   float64
	InitialDirection geom.Vec2
	DirectionMemory  float64
	MinDistToBase    float64
	MinDistToFood    float64
	MaxDistToTrail   float64
	LoadingCapacity  float64

	// Perception radius per agent kind.
	WorkerRadius float64
	ScoutRadius  float64

	// Trails.
	TrailDecay       float64
	TrailMinStrength float64
	TrailMaxStrength float64
	// Trails not reinforced for this many ticks are dropped. 0 keeps them forever.
	TrailExpiryTicks int

	Worker Traits
	Scout  Traits

	StatsBucketTicks int
	StatsWindowTicks int
}

// ConfigFromTuning maps the YAML tuning onto a world config.
func ConfigFromTuning(id string, t tuning.Tuning) WorldConfig {
	return WorldConfig{
		ID:               id,
		TickRateHz:       t.TickRateHz,
		Seed:             uint64(t.Seed),
		InitialEnergy:    t.Agent.InitialEnergy,
		MinEnergy:        t.Agent.MinEnergy,
		MoveEnergyCost:   t.Agent.MoveEnergyCost,
		InitialDirection: geom.FromArr(t.Agent.InitialDirection),
		DirectionMemory:  t.Agent.DirectionMemory,
		MinDistToBase:    t.Agent.MinDistToBase,
		MinDistToFood:    t.Agent.MinDistToFood,
		MaxDistToTrail:   t.Agent.MaxDistToTrail,
		LoadingCapacity:  t.Agent.LoadingCapacity,
		WorkerRadius:     t.Perception.WorkerRadius,
		ScoutRadius:      t.Perception.ScoutRadius,
		TrailDecay:       t.Trail.Decay,
		TrailMinStrength: t.Trail.MinStrength,
		TrailMaxStrength: t.Trail.MaxStrength,
		TrailExpiryTicks: t.Trail.ExpiryTicks,
		Worker:           traitsFromTuning(t.Kinds.Worker),
		Scout:            traitsFromTuning(t.Kinds.Scout),
		StatsBucketTicks: t.Stats.BucketTicks,
		StatsWindowTicks: t.Stats.WindowTicks,
	}
}

func traitsFromTuning(tt tuning.TraitTuning) Traits {
	return Traits{
		FoodPreference:           tt.Food,
		ScentPreference:          tt.Scent,
		DirectionalityPreference: tt.Directionality,
		ExplorationPreference:    tt.Exploration,
	}
}

func (c *WorldConfig) applyDefaults() {
	if c.ID == "" {
		c.ID = "colony_1"
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = 20
	}
	if c.InitialEnergy <= c.MinEnergy {
		c.InitialEnergy = c.MinEnergy + 100
	}
	if c.MoveEnergyCost < 0 {
		c.MoveEnergyCost = 0
	}
	// Already-unit directions are kept bit for bit so a config survives a round trip.
	if d, ok := c.InitialDirection.Unit(); !ok {
		c.InitialDirection = geom.V(1, 0)
	} else if math.Abs(c.InitialDirection.Len()-1) > 1e-12 {
		c.InitialDirection = d
	}
	if c.MinDistToBase <= 0 {
		c.MinDistToBase = 1
	}
	if c.MinDistToFood <= 0 {
		c.MinDistToFood = 1
	}
	if c.MaxDistToTrail <= 0 {
		c.MaxDistToTrail = 0.5
	}
	if c.LoadingCapacity <= 0 {
		c.LoadingCapacity = 5
	}
	if c.WorkerRadius <= 0 {
		c.WorkerRadius = 10
	}
	if c.ScoutRadius <= 0 {
		c.ScoutRadius = 2 * c.WorkerRadius
	}
	if c.TrailDecay <= 0 || c.TrailDecay > 1 {
		c.TrailDecay = 0.95
	}
	if c.TrailMinStrength < 0 {
		c.TrailMinStrength = 0
	}
	if c.TrailMaxStrength <= c.TrailMinStrength {
		c.TrailMaxStrength = c.TrailMinStrength + 100
	}
	if c.TrailExpiryTicks < 0 {
		c.TrailExpiryTicks = 0
	}
	c.Worker = c.Worker.sanitized()
	c.Scout = c.Scout.sanitized()
	if c.StatsBucketTicks <= 0 {
		c.StatsBucketTicks = 100
	}
	if c.StatsWindowTicks < c.StatsBucketTicks {
		c.StatsWindowTicks = 10 * c.StatsBucketTicks
	}
}

// perceptionRadius returns how far an agent of kind k senses.
func (c *WorldConfig) perceptionRadius(k AgentKind) float64 {
	if k == KindScout {
		return c.ScoutRadius
	}
	return c.WorkerRadius
}

func (c *WorldConfig) traits(k AgentKind) Traits {
	if k == KindScout {
		return c.Scout
	}
	return c.Worker
}
