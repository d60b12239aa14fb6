package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestDirection_OppositeIsInvolution(t *testing.T) {
	for _, d := range AllDirections() {
		testutil.AssertEqual(t, d.String(), d.Opposite().Opposite(), d)
		if d.Opposite() == d {
			t.Errorf("%s is its own opposite", d)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]struct {
		input string
		exp   Direction
		expOk bool
	}{
		"short":        {input: "ne", exp: NorthEast, expOk: true},
		"long":         {input: "southwest", exp: SouthWest, expOk: true},
		"mixed case":   {input: "Up", exp: Up, expOk: true},
		"padded":       {input: " d ", exp: Down, expOk: true},
		"unknown":      {input: "sideways"},
		"empty string": {input: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d, ok := ParseDirection(tt.input)
			testutil.AssertEqual(t, "ok", ok, tt.expOk)
			if tt.expOk {
				testutil.AssertEqual(t, "direction", d, tt.exp)
			}
		})
	}
}

func TestTime_Tick(t *testing.T) {
	tests := map[string]struct {
		start Time
		ticks int
		exp   Time
	}{
		"first tick": {
			start: NewTime(),
			ticks: 1,
			exp:   Time{Day: 1, Hour: 7, Second: 15},
		},
		"minute roll over": {
			start: Time{Day: 1, Hour: 7, Second: 45},
			ticks: 1,
			exp:   Time{Day: 1, Hour: 7, Minute: 1},
		},
		"day roll over": {
			start: Time{Day: 3, Hour: 23, Minute: 59, Second: 45},
			ticks: 1,
			exp:   Time{Day: 4},
		},
		"full day": {
			start: NewTime(),
			ticks: TicksPerDay,
			exp:   Time{Day: 2, Hour: 7},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tt.start
			for range tt.ticks {
				got = got.Tick()
			}
			testutil.AssertEqual(t, "time", got, tt.exp)
		})
	}
}

func TestConstrainedValue_ClampsEveryWrite(t *testing.T) {
	tests := map[string]struct {
		op  func(v *ConstrainedValue)
		exp float64
	}{
		"set above max":     {op: func(v *ConstrainedValue) { v.Set(150) }, exp: 100},
		"set below min":     {op: func(v *ConstrainedValue) { v.Set(-3) }, exp: 0},
		"add past max":      {op: func(v *ConstrainedValue) { v.Add(80) }, exp: 100},
		"subtract past min": {op: func(v *ConstrainedValue) { v.Subtract(80) }, exp: 0},
		"multiply":          {op: func(v *ConstrainedValue) { v.Multiply(1.5) }, exp: 75},
		"multiply past max": {op: func(v *ConstrainedValue) { v.Multiply(3) }, exp: 100},
		"in range":          {op: func(v *ConstrainedValue) { v.Add(10) }, exp: 60},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v := NewConstrainedValue(50, 0, 100)
			tt.op(&v)
			testutil.AssertEqual(t, "current", v.Get(), tt.exp)
			if v.Get() < v.Min() || v.Get() > v.Max() {
				t.Errorf("value %v escaped [%v, %v]", v.Get(), v.Min(), v.Max())
			}
		})
	}
}

func TestConstrainedValue_ConstructionClamps(t *testing.T) {
	v := NewConstrainedValue(500, 0, 10)
	testutil.AssertEqual(t, "current", v.Get(), 10.0)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for min > max")
		}
	}()
	NewConstrainedValue(0, 5, 1)
}

func TestConstrainedValue_UnmarshalClamps(t *testing.T) {
	var v ConstrainedValue
	err := v.UnmarshalJSON([]byte(`{"current": 120, "min": 0, "max": 100}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "current", v.Get(), 100.0)

	err = v.UnmarshalJSON([]byte(`{"current": 1, "min": 5, "max": 0}`))
	testutil.AssertErrorContains(t, err, "greater than max")
}

func TestFormatList(t *testing.T) {
	tests := map[string]struct {
		items []string
		exp   string
	}{
		"none":  {items: nil, exp: ""},
		"one":   {items: []string{"a"}, exp: "a"},
		"two":   {items: []string{"a", "b"}, exp: "a and b"},
		"three": {items: []string{"a", "b", "c"}, exp: "a, b, and c"},
		"four":  {items: []string{"a", "b", "c", "d"}, exp: "a, b, c, and d"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "list", FormatList(tt.items), tt.exp)
		})
	}
}

func TestCapitalize(t *testing.T) {
	testutil.AssertEqual(t, "ascii", Capitalize("the goblin"), "The goblin")
	testutil.AssertEqual(t, "unicode", Capitalize("élan"), "Élan")
	testutil.AssertEqual(t, "empty", Capitalize(""), "")
}

func TestFluid_Remove(t *testing.T) {
	f := Fluid{Water: 0.75, Alcohol: 0.25}
	removed := f.Remove(0.5)

	testutil.AssertEqual(t, "removed water", removed[Water], 0.375)
	testutil.AssertEqual(t, "removed alcohol", removed[Alcohol], 0.125)
	testutil.AssertEqual(t, "left", f.Total(), 0.5)

	all := f.Remove(10)
	testutil.AssertEqual(t, "removed rest", all.Total(), 0.5)
	testutil.AssertEqual(t, "types left", len(f), 0)
}
