package actions

import (
	"fmt"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
)

// OpenAction opens a door or container.
type OpenAction struct {
	Target ecs.Entity
}

func (a *OpenAction) MayRequireTick() bool {
	return true
}

func (a *OpenAction) Verify(performer ecs.Entity, w *ecs.World) error {
	return verifyOpenable(w, performer, a.Target, true)
}

func (a *OpenAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	return setOpen(w, performer, a.Target, true)
}

func (a *OpenAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

// CloseAction closes a door or container.
type CloseAction struct {
	Target ecs.Entity
}

func (a *CloseAction) MayRequireTick() bool {
	return true
}

func (a *CloseAction) Verify(performer ecs.Entity, w *ecs.World) error {
	return verifyOpenable(w, performer, a.Target, false)
}

func (a *CloseAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	return setOpen(w, performer, a.Target, false)
}

func (a *CloseAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

func verb(open bool) string {
	if open {
		return "open"
	}
	return "close"
}

func verifyOpenable(w *ecs.World, performer, target ecs.Entity, open bool) error {
	state, ok := ecs.Get[game.OpenState](w, target)
	if !ok {
		return userError("you can't %s %s.", verb(open), game.Name(w, target))
	}
	if !game.Perceives(w, performer, target) {
		return userError("you don't see %s here.", game.Name(w, target))
	}
	if state.Open == open {
		if open {
			return userError("%s is already open.", game.Name(w, target))
		}
		return userError("%s is already closed.", game.Name(w, target))
	}
	return nil
}

func setOpen(w *ecs.World, performer, target ecs.Entity, open bool) game.ActionResult {
	game.SetOpen(w, target, open)
	name := game.Name(w, target)
	b := game.NewResult().
		Message(performer, fmt.Sprintf("You %s %s.", verb(open), name)).
		ToRoom(w, performer, fmt.Sprintf("%s %ss %s.", capName(w, performer), verb(open), name))

	if conn, ok := ecs.Get[game.Connection](w, target); ok && conn.OtherSide != 0 {
		other := game.Capitalize(game.Name(w, conn.OtherSide))
		if open {
			b.ToRoom(w, conn.OtherSide, fmt.Sprintf("%s opens.", other))
		} else {
			b.ToRoom(w, conn.OtherSide, fmt.Sprintf("%s closes.", other))
		}
	}
	return b.CompleteShouldTick(true)
}

func openParser() game.InputParser {
	return doorParser(true)
}

func closeParser() game.InputParser {
	return doorParser(false)
}

func doorParser(open bool) game.InputParser {
	v := verb(open)
	return command(v, `^`+v+`(\s+(?P<target>.+))?$`, []string{v + " <door>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			target, err := game.FindTarget(w, performer, v, c["target"])
			if err != nil {
				return nil, err
			}
			if open {
				return &OpenAction{Target: target}, nil
			}
			return &CloseAction{Target: target}, nil
		})
}
