package actions

import (
	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
)

// LookAction describes the performer's room, or Target when it is set.
// A free look takes no time; it is queued after moving.
type LookAction struct {
	Target ecs.Entity
	free   bool
}

func (a *LookAction) MayRequireTick() bool {
	return !a.free
}

func (a *LookAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	target := a.Target
	if target == 0 {
		room, ok := game.RoomOf(w, performer)
		if !ok {
			return game.ErrorResult(performer, "You are nowhere.")
		}
		target = room
	}

	b := game.NewResult()
	if ecs.Has[game.Room](w, target) {
		b.With(performer, game.DescribeLocation(w, performer, target))
	} else {
		if !game.Perceives(w, performer, target) {
			return game.ErrorResult(performer, "You don't see that here.")
		}
		b.With(performer, game.DescribeEntity(w, target))
	}

	if a.free {
		return b.CompleteNoTick(true)
	}
	return b.CompleteShouldTick(true)
}

func (a *LookAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

func lookParser() game.InputParser {
	return command("look", `^(l|look)(\s+(at\s+)?(?P<target>.+))?$`, []string{"look", "look [at] <thing>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			if c["target"] == "" {
				return &LookAction{}, nil
			}
			target, err := game.FindTarget(w, performer, "look at", c["target"])
			if err != nil {
				return nil, err
			}
			return &LookAction{Target: target}, nil
		})
}

// NewGlance returns a look at the performer's room that takes no time.
func NewGlance() *LookAction {
	return &LookAction{free: true}
}
