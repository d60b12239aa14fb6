package game

import (
	"fmt"
	"time"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

// PlayerInventoryWeight is how much a new player can carry.
const PlayerInventoryWeight = 25

// FindSpawnRoom returns the lowest-numbered room marked SpawnRoom.
func FindSpawnRoom(w *ecs.World) (ecs.Entity, error) {
	for e := range ecs.Query[SpawnRoom](w) {
		return e, nil
	}
	return 0, fmt.Errorf("no spawn room exists")
}

// SpawnPlayer creates a player named name in the spawn room whose messages go to sender.
func SpawnPlayer(w *ecs.World, name string, sender Sender, now time.Time) (ecs.Entity, error) {
	room, err := FindSpawnRoom(w)
	if err != nil {
		return 0, err
	}

	e := w.Spawn()
	ecs.Attach(w, e, Description{Name: name, Pronouns: PronounsThey})
	ecs.Attach(w, e, Player{LastInput: now})
	ecs.Attach(w, e, MessageChannel{Sender: sender})
	ecs.Attach(w, e, Container{MaxWeight: PlayerInventoryWeight})
	ecs.Attach(w, e, NewVitals())
	ecs.Attach(w, e, NewStats())
	ecs.Attach(w, e, WornItems{})
	ecs.Attach(w, e, HeldItems{Hands: DefaultHands})
	ecs.Attach(w, e, ActionQueue{})
	MoveEntity(w, e, room)
	return e, nil
}

// DescribePlayers lists every connected player as seen by viewer.
func DescribePlayers(w *ecs.World, viewer ecs.Entity, now time.Time) PlayersDescription {
	var desc PlayersDescription
	for e := range ecs.Query[Player](w) {
		if ecs.Has[ClientGone](w, e) {
			continue
		}
		desc.Players = append(desc.Players, PlayerDescription{
			Name:            Name(w, e),
			HasQueuedAction: HasQueuedAction(w, e),
			IsAfk:           IsAfk(w, e, now),
			IsSelf:          e == viewer,
		})
	}
	return desc
}

// MarkInput records that e sent input at now, clearing AFK.
func MarkInput(w *ecs.World, e ecs.Entity, now time.Time) {
	if p, ok := ecs.Get[Player](w, e); ok {
		p.LastInput = now
	}
}
