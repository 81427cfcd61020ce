package world

import (
	"antcolony.ai/internal/sim/geom"
	"antcolony.ai/internal/sim/tuning"
)

// SeedScenario creates the configured colonies and food sources. Like the other
// creates it must run on the world goroutine, normally before Run starts.
func (w *World) SeedScenario(sc tuning.ScenarioTuning) error {
	if len(sc.Colonies) > 0 {
		players := make([]*Player, len(sc.Colonies))
		positions := make([]geom.Vec2, len(sc.Colonies))
		for i, c := range sc.Colonies {
			players[i] = &Player{ID: c.ID, Name: c.Name, Color: c.Color}
			positions[i] = geom.FromArr(c.Pos)
		}
		bases, err := w.CreateBases(players, positions, sc.BaseSize, sc.BaseHealth)
		if err != nil {
			return err
		}
		for i, c := range sc.Colonies {
			if c.Workers > 0 {
				if _, err := w.CreateAgents(bases[i], string(KindWorker), c.Workers); err != nil {
					return err
				}
			}
			if c.Scouts > 0 {
				if _, err := w.CreateAgents(bases[i], string(KindScout), c.Scouts); err != nil {
					return err
				}
			}
		}
	}
	if len(sc.Food) == 0 {
		return nil
	}
	positions := make([]geom.Vec2, len(sc.Food))
	sizes := make([]float64, len(sc.Food))
	for i, f := range sc.Food {
		positions[i] = geom.FromArr(f.Pos)
		sizes[i] = f.Size
	}
	_, err := w.CreateResources(positions, sizes)
	return err
}
