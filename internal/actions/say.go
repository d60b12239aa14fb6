package actions

import (
	"fmt"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
)

// SayAction speaks to everyone in the room. Talking takes no time.
type SayAction struct {
	Text string
}

func (a *SayAction) MayRequireTick() bool {
	return false
}

func (a *SayAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	return game.NewResult().
		Message(performer, fmt.Sprintf("You say, \"%s\"", a.Text)).
		ToRoom(w, performer, fmt.Sprintf("%s says, \"%s\"", capName(w, performer), a.Text)).
		CompleteNoTick(true)
}

func (a *SayAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

func sayParser() game.InputParser {
	return command("say", `^(say(\s+|$)|")(?P<text>.*)$`, []string{"say <text>", `"<text>`},
		func(c game.Captures, _ ecs.Entity, _ *ecs.World) (game.Action, error) {
			if c["text"] == "" {
				return nil, game.ErrInvalidArgument("say", "Say what?")
			}
			return &SayAction{Text: c["text"]}, nil
		})
}
