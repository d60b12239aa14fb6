package actions

import (
	"strconv"
	"strings"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
)

// WaitAction lets Ticks ticks pass. It stays at the head of the queue until
// they have.
type WaitAction struct {
	Ticks   int
	elapsed int
}

func (a *WaitAction) MayRequireTick() bool {
	return true
}

func (a *WaitAction) Perform(performer ecs.Entity, _ *ecs.World) game.ActionResult {
	b := game.NewResult()
	if a.elapsed == 0 && a.Ticks > 1 {
		b.Message(performer, "You start waiting...")
	}
	a.elapsed++
	if a.elapsed < a.Ticks {
		return b.Incomplete()
	}
	if a.Ticks > 1 {
		return b.Message(performer, "You finish waiting.").CompleteShouldTick(true)
	}
	return b.Message(performer, "You wait.").CompleteShouldTick(true)
}

func (a *WaitAction) Interrupt(performer ecs.Entity, _ *ecs.World) game.ActionInterruptResult {
	return game.InterruptMessage(performer, "You stop waiting.")
}

func waitParser() game.InputParser {
	return command("wait", `^(wait|z)(\s+(?P<amount>\d+)\s*(?P<unit>[a-z]+)?)?$`, []string{"wait", "wait <n> minutes", "wait <n> hours"},
		func(c game.Captures, _ ecs.Entity, _ *ecs.World) (game.Action, error) {
			if c["amount"] == "" {
				return &WaitAction{Ticks: 1}, nil
			}
			n, err := strconv.Atoi(c["amount"])
			if err != nil || n <= 0 {
				return nil, game.ErrInvalidArgument("wait", "Wait how long?")
			}

			var per int
			switch strings.ToLower(c["unit"]) {
			case "", "tick", "ticks":
				per = 1
			case "m", "min", "mins", "minute", "minutes":
				per = game.TicksPerMinute
			case "h", "hour", "hours":
				per = game.TicksPerHour
			default:
				return nil, game.ErrInvalidArgument("wait", "Wait how long?")
			}
			if n > game.TicksPerDay/per {
				return nil, game.ErrCommandSpecific("wait", "You can't wait longer than a day.")
			}
			return &WaitAction{Ticks: n * per}, nil
		})
}
