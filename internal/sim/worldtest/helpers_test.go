package worldtest

import (
	"math"

	world "antcolony.ai/internal/sim/world"
)

func baseConfig() world.WorldConfig {
	return world.WorldConfig{
		ID:              "test",
		TickRateHz:      20,
		Seed:            42,
		InitialEnergy:   100,
		DirectionMemory: 0.9,
		WorkerRadius:    10,
		ScoutRadius:     20,
		Worker:          world.Traits{FoodPreference: 1, ScentPreference: 2, DirectionalityPreference: 1},
		Scout:           world.Traits{FoodPreference: 2, ExplorationPreference: 1},
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
