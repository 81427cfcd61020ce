package world

import (
	"math"
	"math/rand/v2"

	"antcolony.ai/internal/sim/geom"
)

// directionalFeature is a placeholder for matching a trail's heading against the
// agent's own. It is constant, so the directionality exponent has no effect yet.
const directionalFeature = 1.0

// candidate is one possible movement target with its raw (unnormalised) features.
type candidate struct {
	target   geom.Vec2
	features []float64
}

func (a *Agent) chooseResource(env *tickEnv, foods []*Resource) (geom.Vec2, bool) {
	if len(foods) == 1 {
		return foods[0].pos, true
	}
	cands := make([]candidate, len(foods))
	for i, r := range foods {
		cands[i] = candidate{
			target:   r.pos,
			features: []float64{r.quantity, r.pos.Dist(a.home.pos)},
		}
	}
	exps := []float64{a.traits.FoodPreference, a.traits.ExplorationPreference}
	return pick(env.rng, cands, exps)
}

func (a *Agent) chooseTrail(env *tickEnv, trails []*Trail) (geom.Vec2, bool) {
	if len(trails) == 1 {
		return trails[0].pos, true
	}
	cands := make([]candidate, len(trails))
	for i, t := range trails {
		cands[i] = candidate{
			target:   t.pos,
			features: []float64{t.strength, t.pos.Dist(a.home.pos), directionalFeature},
		}
	}
	exps := []float64{a.traits.ScentPreference, a.traits.ExplorationPreference, a.traits.DirectionalityPreference}
	return pick(env.rng, cands, exps)
}

func pick(rng *rand.Rand, cands []candidate, exps []float64) (geom.Vec2, bool) {
	probs, ok := selectionProbabilities(cands, exps)
	if !ok {
		return geom.Vec2{}, false
	}
	i := sampleCategorical(rng, probs)
	if i < 0 {
		return geom.Vec2{}, false
	}
	return cands[i].target, true
}

// selectionProbabilities returns one probability per candidate. Candidates with any
// non-positive feature are degenerate and get 0. Each remaining feature column is
// divided by its maximum before the exponents are applied. ok is false when no
// candidate can be chosen.
func selectionProbabilities(cands []candidate, exps []float64) ([]float64, bool) {
	probs := make([]float64, len(cands))
	keep := make([]bool, len(cands))
	maxes := make([]float64, len(exps))
	kept := 0
	for i, c := range cands {
		if len(c.features) != len(exps) || !positiveFinite(c.features) {
			continue
		}
		keep[i] = true
		kept++
		for j, f := range c.features {
			maxes[j] = math.Max(maxes[j], f)
		}
	}
	if kept == 0 {
		return probs, false
	}

	total := 0.0
	for i, c := range cands {
		if !keep[i] {
			continue
		}
		w := 1.0
		for j, f := range c.features {
			w *= math.Pow(f/maxes[j], exps[j])
		}
		probs[i] = w
		total += w
	}
	if !(total > 0) || math.IsInf(total, 0) {
		for i := range probs {
			probs[i] = 0
		}
		return probs, false
	}
	for i := range probs {
		probs[i] /= total
	}
	return probs, true
}

func positiveFinite(fs []float64) bool {
	for _, f := range fs {
		if !(f > 0) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// sampleCategorical draws an index from a normalised distribution.
func sampleCategorical(rng *rand.Rand, probs []float64) int {
	x := rng.Float64()
	last := -1
	for i, p := range probs {
		if p <= 0 {
			continue
		}
		last = i
		if x < p {
			return i
		}
		x -= p
	}
	// Round-off can leave x just above the final bucket.
	return last
}
