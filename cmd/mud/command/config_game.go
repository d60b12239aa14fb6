package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudengine/internal/engine"
	"github.com/pixil98/go-mudengine/internal/game"
)

type GameConfig struct {
	AfkTimeout string            `json:"afk_timeout,omitempty"`
	VitalDecay *VitalDecayConfig `json:"vital_decay,omitempty"`
	Seed       *uint64           `json:"seed,omitempty"`
}

// VitalDecayConfig turns on hunger, thirst and fatigue. Rates left at zero
// keep their defaults.
type VitalDecayConfig struct {
	SatietyPerTick    float64 `json:"satiety_per_tick,omitempty"`
	HydrationPerTick  float64 `json:"hydration_per_tick,omitempty"`
	EnergyPerTick     float64 `json:"energy_per_tick,omitempty"`
	StarvationPerTick float64 `json:"starvation_per_tick,omitempty"`
}

func (c *GameConfig) validate() error {
	el := errors.NewErrorList()

	if c.AfkTimeout != "" {
		d, err := time.ParseDuration(c.AfkTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing afk_timeout: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("afk_timeout must be positive"))
		}
	}

	if v := c.VitalDecay; v != nil {
		if v.SatietyPerTick < 0 || v.HydrationPerTick < 0 || v.EnergyPerTick < 0 || v.StarvationPerTick < 0 {
			el.Add(fmt.Errorf("vital_decay rates cannot be negative"))
		}
	}

	return el.Err()
}

func (c *GameConfig) engineOpts() ([]engine.EngineOpt, error) {
	var opts []engine.EngineOpt

	if c.AfkTimeout != "" {
		d, err := time.ParseDuration(c.AfkTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing afk_timeout: %w", err)
		}
		opts = append(opts, engine.WithGameOptions(game.GameOptions{AfkTimeout: d}))
	}

	if v := c.VitalDecay; v != nil {
		decay := game.DefaultVitalDecay()
		if v.SatietyPerTick > 0 {
			decay.SatietyPerTick = v.SatietyPerTick
		}
		if v.HydrationPerTick > 0 {
			decay.HydrationPerTick = v.HydrationPerTick
		}
		if v.EnergyPerTick > 0 {
			decay.EnergyPerTick = v.EnergyPerTick
		}
		if v.StarvationPerTick > 0 {
			decay.StarvationPerTick = v.StarvationPerTick
		}
		opts = append(opts, engine.WithVitalDecay(decay))
	}

	if c.Seed != nil {
		opts = append(opts, engine.WithSeed(*c.Seed))
	}

	return opts, nil
}
