package world

import (
	"math"

	"antcolony.ai/internal/sim/geom"
)

// update runs one decision step:
//  1. out of energy: die
//  2. carrying: unload at home, or step home and lay a trail
//  3. empty: load at a resource, or pick a resource / trail / random direction and step
func (a *Agent) update(env *tickEnv, perceived []Entity) bool {
	if a.energy <= env.cfg.MinEnergy {
		env.rec.Deaths = append(env.rec.Deaths, RecordedDeath{AgentID: a.id, Kind: a.kind, OwnerID: playerID(a.owner), Pos: a.pos.Arr()})
		return false
	}

	if a.carried > 0 {
		if !a.atHome(env) {
			a.moveToward(a.home.pos, env.cfg)
			a.layTrail(env, perceived)
		}
		return true
	}

	if !a.atResource(env, perceived) {
		a.forage(env, perceived)
	}
	return true
}

// atHome unloads everything into the home base when within homing distance.
func (a *Agent) atHome(env *tickEnv) bool {
	if a.pos.Dist(a.home.pos) > env.cfg.MinDistToBase {
		return false
	}
	a.pos = a.home.pos
	amount := a.carried
	a.home.deposit(amount)
	a.carried = 0
	a.trailStrength = 0
	env.rec.Deposits = append(env.rec.Deposits, RecordedDeposit{AgentID: a.id, BaseID: a.home.id, Amount: amount})
	return true
}

// atResource loads from the first non-empty resource within loading distance.
func (a *Agent) atResource(env *tickEnv, perceived []Entity) bool {
	cfg := env.cfg
	for _, e := range perceived {
		r, ok := e.(*Resource)
		if !ok || r.quantity <= 0 {
			continue
		}
		if a.pos.Dist(r.pos) > cfg.MinDistToFood {
			continue
		}
		a.pos = r.pos
		a.carried = r.Take(a.capacity)
		env.rec.FoodDrawn += a.carried

		// Stronger scent for richer food close to home. Decay is undone here because
		// the first deposit on the way back applies it again.
		s := cfg.TrailMaxStrength
		if d := a.pos.Dist(a.home.pos); d > 0 {
			s = math.Min(100*r.quantity/d, cfg.TrailMaxStrength)
		}
		a.trailStrength = s / cfg.TrailDecay
		return true
	}
	return false
}

// forage moves toward food if any is perceived, else toward a trail, else randomly.
// Exhausted resources still count as perceived food: with several candidates they
// get zero weight, and when none is usable the agent stays put this tick.
func (a *Agent) forage(env *tickEnv, perceived []Entity) {
	var foods []*Resource
	var trails []*Trail
	for _, e := range perceived {
		switch v := e.(type) {
		case *Resource:
			foods = append(foods, v)
		case *Trail:
			trails = append(trails, v)
		}
	}

	switch {
	case len(foods) > 0:
		if target, ok := a.chooseResource(env, foods); ok {
			a.moveToward(target, env.cfg)
		}
	case len(trails) > 0:
		if target, ok := a.chooseTrail(env, trails); ok {
			a.moveToward(target, env.cfg)
		}
	default:
		a.wander(env)
	}
}

// moveToward takes one unit step toward target. Nothing happens if the agent is already there.
func (a *Agent) moveToward(target geom.Vec2, cfg *WorldConfig) {
	u, ok := target.Sub(a.pos).Unit()
	if !ok {
		return
	}
	a.direction = u
	a.advance(u, cfg)
}

// wander is a random walk biased by the remembered direction.
func (a *Agent) wander(env *tickEnv) {
	for {
		step := geom.V(float64(env.rng.IntN(3)-1), float64(env.rng.IntN(3)-1))
		v := a.direction.Scale(a.memory).Add(step)
		if u, ok := v.Unit(); ok {
			a.direction = u
			a.advance(u, env.cfg)
			return
		}
	}
}

func (a *Agent) advance(u geom.Vec2, cfg *WorldConfig) {
	a.pos = a.pos.Add(u)
	a.energy -= cfg.MoveEnergyCost * u.Len()
}

// layTrail decays the agent's scent and either reinforces a nearby trail or emits a new one.
func (a *Agent) layTrail(env *tickEnv, perceived []Entity) {
	cfg := env.cfg
	a.trailStrength = math.Max(cfg.TrailMinStrength, cfg.TrailDecay*a.trailStrength)
	for _, e := range perceived {
		t, ok := e.(*Trail)
		if !ok {
			continue
		}
		if a.pos.Dist(t.pos) <= cfg.MaxDistToTrail {
			t.reinforce(a.trailStrength, env.tick)
			env.rec.TrailsMerged++
			return
		}
	}
	env.emitTrail(a.owner, a.pos, a.trailStrength)
}

func playerID(p *Player) string {
	if p == nil {
		return ""
	}
	return p.ID
}
