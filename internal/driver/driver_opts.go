package driver

import "time"

type MudDriverOpt func(*MudDriver)

func WithTickLength(tickLength time.Duration) MudDriverOpt {
	return func(d *MudDriver) {
		d.tickLength = tickLength
	}
}

// WithClock replaces the clock used to time ticks.
func WithClock(now func() time.Time) MudDriverOpt {
	return func(d *MudDriver) {
		d.now = now
	}
}
