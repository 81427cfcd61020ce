package tuning

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	TickRateHz int   `yaml:"tick_rate_hz"`
	Seed       int64 `yaml:"seed"`

	Agent      AgentTuning      `yaml:"agent"`
	Perception PerceptionTuning `yaml:"perception"`
	Trail      TrailTuning      `yaml:"trail"`
	Kinds      KindsTuning      `yaml:"kinds"`
	Stats      StatsTuning      `yaml:"stats"`
	Scenario   ScenarioTuning   `yaml:"scenario"`
}

type AgentTuning struct {
	InitialEnergy    float64    `yaml:"initial_energy"`
	MinEnergy        float64    `yaml:"min_energy"`
	MoveEnergyCost   float64    `yaml:"move_energy_cost"`
	InitialDirection [2]float64 `yaml:"initial_direction"`
	DirectionMemory  float64    `yaml:"direction_memory"`
	MinDistToBase    float64    `yaml:"min_dist_to_base"`
	MinDistToFood    float64    `yaml:"min_dist_to_food"`
	MaxDistToTrail   float64    `yaml:"max_dist_to_trail"`
	LoadingCapacity  float64    `yaml:"loading_capacity"`
}

type PerceptionTuning struct {
	WorkerRadius float64 `yaml:"worker_radius"`
	ScoutRadius  float64 `yaml:"scout_radius"`
}

type TrailTuning struct {
	Decay       float64 `yaml:"decay"`
	MinStrength float64 `yaml:"min_strength"`
	MaxStrength float64 `yaml:"max_strength"`
	// 0 keeps trails forever.
	ExpiryTicks int `yaml:"expiry_ticks"`
}

type KindsTuning struct {
	Worker TraitTuning `yaml:"worker"`
	Scout  TraitTuning `yaml:"scout"`
}

// TraitTuning holds the foraging exponents of one agent kind. Zero disables a trait.
type TraitTuning struct {
	Food           float64 `yaml:"food"`
	Scent          float64 `yaml:"scent"`
	Directionality float64 `yaml:"directionality"`
	Exploration    float64 `yaml:"exploration"`
}

type StatsTuning struct {
	BucketTicks int `yaml:"bucket_ticks"`
	WindowTicks int `yaml:"window_ticks"`
}

// ScenarioTuning is the colony a freshly started world is seeded with.
type ScenarioTuning struct {
	BaseSize   float64        `yaml:"base_size"`
	BaseHealth float64        `yaml:"base_health"`
	Colonies   []ColonyTuning `yaml:"colonies"`
	Food       []FoodTuning   `yaml:"food"`
}

type ColonyTuning struct {
	ID      string     `yaml:"id"`
	Name    string     `yaml:"name"`
	Color   string     `yaml:"color"`
	Pos     [2]float64 `yaml:"pos"`
	Workers int        `yaml:"workers"`
	Scouts  int        `yaml:"scouts"`
}

type FoodTuning struct {
	Pos  [2]float64 `yaml:"pos"`
	Size float64    `yaml:"size"`
}

func Defaults() Tuning {
	return Tuning{
		TickRateHz: 20,
		Seed:       1337,
		Agent: AgentTuning{
			InitialEnergy:    100,
			MinEnergy:        0,
			MoveEnergyCost:   0.05,
			InitialDirection: [2]float64{1, 0},
			DirectionMemory:  0.9,
			MinDistToBase:    1,
			MinDistToFood:    1,
			MaxDistToTrail:   0.5,
			LoadingCapacity:  5,
		},
		Perception: PerceptionTuning{
			WorkerRadius: 10,
			ScoutRadius:  20,
		},
		Trail: TrailTuning{
			Decay:       0.95,
			MinStrength: 1,
			MaxStrength: 100,
		},
		Kinds: KindsTuning{
			Worker: TraitTuning{Food: 1, Scent: 2, Directionality: 1},
			Scout:  TraitTuning{Food: 2, Exploration: 1},
		},
		Stats: StatsTuning{
			BucketTicks: 100,
			WindowTicks: 1000,
		},
		Scenario: ScenarioTuning{
			BaseSize:   1,
			BaseHealth: 100,
			Colonies: []ColonyTuning{
				{ID: "P1", Name: "red", Color: "#d03030", Workers: 20, Scouts: 4},
			},
			Food: []FoodTuning{
				{Pos: [2]float64{25, 0}, Size: 50},
				{Pos: [2]float64{-15, 20}, Size: 30},
				{Pos: [2]float64{5, -30}, Size: 80},
			},
		},
	}
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	var errs []error
	if t.TickRateHz <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate_hz must be > 0, got %d", t.TickRateHz))
	}
	a := t.Agent
	if a.InitialEnergy <= a.MinEnergy {
		errs = append(errs, fmt.Errorf("agent.initial_energy (%v) must exceed agent.min_energy (%v)", a.InitialEnergy, a.MinEnergy))
	}
	if a.MoveEnergyCost < 0 {
		errs = append(errs, errors.New("agent.move_energy_cost must be >= 0"))
	}
	if a.LoadingCapacity <= 0 {
		errs = append(errs, errors.New("agent.loading_capacity must be > 0"))
	}
	if a.MinDistToBase < 0 || a.MinDistToFood < 0 || a.MaxDistToTrail < 0 {
		errs = append(errs, errors.New("agent distances must be >= 0"))
	}
	p := t.Perception
	if p.WorkerRadius <= 0 || p.ScoutRadius <= 0 {
		errs = append(errs, errors.New("perception radii must be > 0"))
	}
	tr := t.Trail
	if tr.Decay <= 0 || tr.Decay > 1 {
		errs = append(errs, fmt.Errorf("trail.decay must be in (0,1], got %v", tr.Decay))
	}
	if tr.MinStrength < 0 || tr.MaxStrength <= tr.MinStrength {
		errs = append(errs, fmt.Errorf("trail strength bounds invalid: min=%v max=%v", tr.MinStrength, tr.MaxStrength))
	}
	if tr.ExpiryTicks < 0 {
		errs = append(errs, errors.New("trail.expiry_ticks must be >= 0"))
	}
	for _, kt := range []struct {
		name string
		k    TraitTuning
	}{{"worker", t.Kinds.Worker}, {"scout", t.Kinds.Scout}} {
		k, name := kt.k, kt.name
		if k.Food < 0 || k.Scent < 0 || k.Directionality < 0 || k.Exploration < 0 {
			errs = append(errs, fmt.Errorf("kinds.%s: trait exponents must be >= 0", name))
		}
	}
	seen := map[string]bool{}
	for i, c := range t.Scenario.Colonies {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("scenario.colonies[%d]: id is required", i))
		} else if seen[c.ID] {
			errs = append(errs, fmt.Errorf("scenario.colonies[%d]: duplicate id %q", i, c.ID))
		}
		seen[c.ID] = true
		if c.Workers < 0 || c.Scouts < 0 {
			errs = append(errs, fmt.Errorf("scenario.colonies[%d]: agent counts must be >= 0", i))
		}
	}
	for i, f := range t.Scenario.Food {
		if f.Size < 0 {
			errs = append(errs, fmt.Errorf("scenario.food[%d]: size must be >= 0", i))
		}
	}
	return errors.Join(errs...)
}
