package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string           `json:"tick_interval"`
	Game         GameConfig       `json:"game"`
	Listeners    []ListenerConfig `json:"listeners"`
	Bus          BusConfig        `json:"bus"`
	Content      ContentConfig    `json:"content"`
	Metrics      MetricsConfig    `json:"metrics"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if _, err := c.tickLength(); err != nil {
		el.Add(err)
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Game.validate())
	el.Add(c.Bus.validate())
	el.Add(c.Content.validate())
	el.Add(c.Metrics.validate())

	return el.Err()
}

func (c *Config) tickLength() (time.Duration, error) {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("parsing tick_interval: %w", err)
	}
	if d < time.Second {
		return 0, fmt.Errorf("tick_interval must be at least 1 second")
	}
	return d, nil
}
