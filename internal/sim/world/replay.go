package world

import (
	"fmt"

	"antcolony.ai/internal/sim/geom"
)

// ApplyCreates re-applies creations recorded in a tick log entry. Called before
// stepping that entry's tick, it reproduces the recorded run.
func (w *World) ApplyCreates(creates []RecordedCreate) error {
	for i, c := range creates {
		var err error
		switch c.Type {
		case CreateTypeBases:
			players := make([]*Player, len(c.Players))
			for j := range c.Players {
				p := c.Players[j]
				players[j] = &p
			}
			_, err = w.CreateBases(players, vecs(c.Positions), c.Size, c.Health)
		case CreateTypeAgents:
			b, ok := w.Base(c.BaseID)
			if !ok {
				err = fmt.Errorf("%w: %s", ErrUnknownBase, c.BaseID)
				break
			}
			_, err = w.CreateAgents(b, c.Kind, c.Count)
		case CreateTypeResources:
			_, err = w.CreateResources(vecs(c.Positions), c.Sizes)
		default:
			err = fmt.Errorf("%w: unknown create type %q", ErrBadRequest, c.Type)
		}
		if err != nil {
			return fmt.Errorf("create %d (%s): %w", i, c.Type, err)
		}
	}
	return nil
}

func vecs(as [][2]float64) []geom.Vec2 {
	out := make([]geom.Vec2, len(as))
	for i, a := range as {
		out[i] = geom.FromArr(a)
	}
	return out
}
