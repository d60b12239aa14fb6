package engine

import (
	"time"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
)

type EngineOpt func(*Engine)

// WithGameOptions sets the options installed into the world.
func WithGameOptions(opts game.GameOptions) EngineOpt {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithVitalDecay enables per-tick vital decay at the given rates.
func WithVitalDecay(decay game.VitalDecay) EngineOpt {
	return func(e *Engine) {
		e.decay = &decay
	}
}

// WithLoader adds a function that populates the world before it starts.
// Loaders run in the order given.
func WithLoader(load func(*ecs.World) error) EngineOpt {
	return func(e *Engine) {
		e.loaders = append(e.loaders, load)
	}
}

// WithClock replaces the wall clock used for AFK detection.
func WithClock(now func() time.Time) EngineOpt {
	return func(e *Engine) {
		e.now = now
	}
}

// WithSeed makes behaviors and combat rolls repeatable.
func WithSeed(seed uint64) EngineOpt {
	return func(e *Engine) {
		e.seed = &seed
	}
}
