package game

import "fmt"

const (
	TickSeconds = 15

	TicksPerMinute = 60 / TickSeconds
	TicksPerHour   = TicksPerMinute * 60
	TicksPerDay    = TicksPerHour * 24
)

// Time is the in-game clock. Every tick moves it forward TickSeconds.
type Time struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// NewTime returns the time at which every world starts: day 1, 07:00:00.
func NewTime() Time {
	return Time{Day: 1, Hour: 7}
}

// Tick returns the time one tick after t.
func (t Time) Tick() Time {
	return t.Add(TickSeconds)
}

func (t Time) Add(seconds int) Time {
	total := t.Second + t.Minute*60 + t.Hour*3600 + seconds
	t.Day += total / 86400
	total %= 86400
	t.Hour = total / 3600
	t.Minute = (total % 3600) / 60
	t.Second = total % 60
	return t
}

func (t Time) String() string {
	return fmt.Sprintf("Day %d, %02d:%02d:%02d", t.Day, t.Hour, t.Minute, t.Second)
}

// Clock is the world resource holding the current in-game time.
type Clock struct {
	Now Time
}
