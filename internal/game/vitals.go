package game

import (
	"fmt"
)

// VitalType names one of the bounded scalars in Vitals.
type VitalType int

const (
	Health VitalType = iota
	Satiety
	Hydration
	Energy
)

func (v VitalType) String() string {
	switch v {
	case Health:
		return "health"
	case Satiety:
		return "satiety"
	case Hydration:
		return "hydration"
	case Energy:
		return "energy"
	default:
		return fmt.Sprintf("vital(%d)", int(v))
	}
}

func (v VitalType) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *VitalType) UnmarshalText(text []byte) error {
	for _, t := range []VitalType{Health, Satiety, Hydration, Energy} {
		if t.String() == string(text) {
			*v = t
			return nil
		}
	}
	return fmt.Errorf("unknown vital: %s", text)
}

// Vitals are the survival scalars of a living entity.
type Vitals struct {
	Health    ConstrainedValue
	Satiety   ConstrainedValue
	Hydration ConstrainedValue
	Energy    ConstrainedValue
}

// NewVitals returns vitals that are full on a 0..100 scale.
func NewVitals() Vitals {
	return Vitals{
		Health:    NewFullValue(0, 100),
		Satiety:   NewFullValue(0, 100),
		Hydration: NewFullValue(0, 100),
		Energy:    NewFullValue(0, 100),
	}
}

func (v *Vitals) Value(t VitalType) *ConstrainedValue {
	switch t {
	case Health:
		return &v.Health
	case Satiety:
		return &v.Satiety
	case Hydration:
		return &v.Hydration
	default:
		return &v.Energy
	}
}

// VitalDecay is the optional resource describing per-tick vital loss.
type VitalDecay struct {
	SatietyPerTick    float64
	HydrationPerTick  float64
	EnergyPerTick     float64
	StarvationPerTick float64
}

// DefaultVitalDecay empties satiety in roughly two days and hydration in one.
func DefaultVitalDecay() VitalDecay {
	return VitalDecay{
		SatietyPerTick:    100.0 / (2 * TicksPerDay),
		HydrationPerTick:  100.0 / TicksPerDay,
		EnergyPerTick:     100.0 / (2 * TicksPerDay),
		StarvationPerTick: 0.05,
	}
}
