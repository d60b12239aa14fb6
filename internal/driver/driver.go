// Package driver advances the simulation on a fixed wall-clock period.
package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 2
)

// Manager is advanced once per driver tick.
type Manager interface {
	Tick(context.Context) error
}

type MudDriver struct {
	tickLength time.Duration
	managers   []Manager
	now        func() time.Time
}

func NewMudDriver(managers []Manager, opts ...MudDriverOpt) *MudDriver {
	d := &MudDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start ticks every manager each period until ctx is cancelled or a manager
// fails.
func (d *MudDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "driver started", "tick_length", d.tickLength)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick advances every manager once, in order.
func (d *MudDriver) Tick(ctx context.Context) error {
	start := d.now()
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	if took := d.now().Sub(start); took > d.tickLength {
		slog.WarnContext(ctx, "tick overran its period", "took", took, "tick_length", d.tickLength)
	}
	return nil
}
