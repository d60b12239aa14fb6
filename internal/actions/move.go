package actions

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-mudengine/internal/notify"
)

// MoveAction walks the performer through the connection in Direction.
type MoveAction struct {
	Direction game.Direction
}

func (a *MoveAction) MayRequireTick() bool {
	return true
}

func (a *MoveAction) connection(performer ecs.Entity, w *ecs.World) (ecs.Entity, *game.Connection, bool) {
	room, ok := game.RoomOf(w, performer)
	if !ok {
		return 0, nil, false
	}
	return game.ConnectionIn(w, room, a.Direction)
}

func (a *MoveAction) Verify(performer ecs.Entity, w *ecs.World) error {
	if _, _, ok := a.connection(performer, w); !ok {
		return game.NewUserError("You can't move in that direction.")
	}
	return nil
}

func (a *MoveAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	e, conn, ok := a.connection(performer, w)
	if !ok {
		return game.ErrorResult(performer, "You can't move in that direction.")
	}
	if open, ok := ecs.Get[game.OpenState](w, e); ok && !open.Open {
		return game.ErrorResult(performer, fmt.Sprintf("%s is closed.", capName(w, e)))
	}
	if !ecs.Has[game.Container](w, conn.Destination) {
		return game.ErrorResult(performer, "You can't move in that direction.")
	}

	name := capName(w, performer)
	b := game.NewResult()
	b.ToRoom(w, performer, fmt.Sprintf("%s walks %s.", name, a.Direction))
	game.MoveEntity(w, performer, conn.Destination)
	b.ToRoom(w, performer, fmt.Sprintf("%s walks in from the %s.", name, a.Direction.Opposite()))
	b.Message(performer, fmt.Sprintf("You walk %s.", a.Direction))
	return b.CompleteShouldTick(true)
}

func (a *MoveAction) Interrupt(performer ecs.Entity, _ *ecs.World) game.ActionInterruptResult {
	return game.InterruptMessage(performer, "You stop moving.")
}

func moveParser() game.InputParser {
	return command("go", `^((?P<verb>go|move)\s+(to\s+(the\s+)?)?)?(?P<direction>\S+)$`, []string{"[go|move] [to [the]] <direction>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			d, ok := game.ParseDirection(c["direction"])
			if ok {
				return &MoveAction{Direction: d}, nil
			}
			if c["verb"] != "" {
				return nil, game.ErrInvalidArgument(strings.ToLower(c["verb"]), "You can't go that way.")
			}
			switch strings.ToLower(c["direction"]) {
			case "go", "move":
				return nil, game.ErrInvalidArgument("go", "Go where?")
			}
			return nil, game.ErrWrongVerb()
		})
}

// autoOpenDoor queues an open ahead of a move through a closed door.
func autoOpenDoor(n notify.Notification[game.BeforeActionNotification, *MoveAction], w *ecs.World) {
	e, _, ok := n.Contents.connection(n.Kind.Performer, w)
	if !ok {
		return
	}
	if open, ok := ecs.Get[game.OpenState](w, e); ok && !open.Open {
		game.QueueFirst(w, n.Kind.Performer, &OpenAction{Target: e})
	}
}

// lookAfterMove shows the new room to whoever moved.
func lookAfterMove(n notify.Notification[game.AfterActionNotification, *MoveAction], w *ecs.World) {
	if !n.Kind.Complete || !n.Kind.Successful || !game.CanReceiveMessages(w, n.Kind.Performer) {
		return
	}
	game.QueueFirst(w, n.Kind.Performer, NewGlance())
}

// greetOnArrival has greeters in the new room welcome whoever arrived.
func greetOnArrival(n notify.Notification[game.AfterActionNotification, *MoveAction], w *ecs.World) {
	if !n.Kind.Complete || !n.Kind.Successful || !game.CanReceiveMessages(w, n.Kind.Performer) {
		return
	}
	room, ok := game.RoomOf(w, n.Kind.Performer)
	if !ok {
		return
	}
	for _, e := range game.ContentsOf(w, room) {
		if e == n.Kind.Performer {
			continue
		}
		if g, ok := ecs.Get[game.GreetBehavior](w, e); ok && g.Greeting != "" {
			game.QueueAction(w, e, &SayAction{Text: g.Greeting})
		}
	}
}
