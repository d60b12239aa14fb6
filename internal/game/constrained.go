package game

import (
	"encoding/json"
	"fmt"
)

// ConstrainedValue is a scalar that never leaves [min, max]. Every write clamps.
type ConstrainedValue struct {
	current float64
	min     float64
	max     float64
}

// NewConstrainedValue panics if min > max; that is a construction error.
func NewConstrainedValue(current, min, max float64) ConstrainedValue {
	if min > max {
		panic(fmt.Sprintf("constrained value min %v is greater than max %v", min, max))
	}
	v := ConstrainedValue{min: min, max: max}
	v.Set(current)
	return v
}

// NewFullValue returns a value sitting at its maximum.
func NewFullValue(min, max float64) ConstrainedValue {
	return NewConstrainedValue(max, min, max)
}

func (v ConstrainedValue) Get() float64 { return v.current }
func (v ConstrainedValue) Min() float64 { return v.min }
func (v ConstrainedValue) Max() float64 { return v.max }

func (v *ConstrainedValue) Set(n float64) {
	v.current = min(max(n, v.min), v.max)
}

func (v *ConstrainedValue) Add(n float64)      { v.Set(v.current + n) }
func (v *ConstrainedValue) Subtract(n float64) { v.Set(v.current - n) }
func (v *ConstrainedValue) Multiply(n float64) { v.Set(v.current * n) }

// Fraction is how full the value is, from 0 at min to 1 at max.
func (v ConstrainedValue) Fraction() float64 {
	if v.max == v.min {
		return 1
	}
	return (v.current - v.min) / (v.max - v.min)
}

type constrainedJSON struct {
	Current float64 `json:"current"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

func (v ConstrainedValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(constrainedJSON{Current: v.current, Min: v.min, Max: v.max})
}

func (v *ConstrainedValue) UnmarshalJSON(b []byte) error {
	var c constrainedJSON
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	if c.Min > c.Max {
		return fmt.Errorf("min %v is greater than max %v", c.Min, c.Max)
	}
	*v = NewConstrainedValue(c.Current, c.Min, c.Max)
	return nil
}
