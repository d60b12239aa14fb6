package actions

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
)

// WearAction puts on a carried wearable item.
type WearAction struct {
	Item ecs.Entity
}

func (a *WearAction) MayRequireTick() bool {
	return true
}

func (a *WearAction) Verify(performer ecs.Entity, w *ecs.World) error {
	wearable, ok := ecs.Get[game.Wearable](w, a.Item)
	if !ok || len(wearable.BodyParts) == 0 {
		return userError("you can't wear %s.", game.Name(w, a.Item))
	}
	worn, ok := ecs.Get[game.WornItems](w, performer)
	if !ok {
		return userError("you can't wear anything.")
	}
	if slices.Contains(worn.Items, a.Item) {
		return userError("you're already wearing %s.", game.Name(w, a.Item))
	}
	if loc, ok := game.LocationOf(w, a.Item); !ok || loc != performer {
		return userError("you don't have %s.", game.Name(w, a.Item))
	}
	if isHeld(w, performer, a.Item) {
		return userError("you'll have to put away %s before you can wear it.", game.Name(w, a.Item))
	}
	for _, part := range wearable.BodyParts {
		if other, ok := worn.WearerOf(w, part); ok {
			return userError("you're already wearing %s on your %s.", game.Name(w, other), part)
		}
	}
	return nil
}

func (a *WearAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	worn := ecs.MustGet[game.WornItems](w, performer)
	worn.Items = append(worn.Items, a.Item)
	item := game.Name(w, a.Item)
	return game.NewResult().
		Message(performer, fmt.Sprintf("You put on %s.", item)).
		ToRoom(w, performer, fmt.Sprintf("%s puts on %s.", capName(w, performer), item)).
		CompleteShouldTick(true)
}

func (a *WearAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

// RemoveAction takes off a worn item, leaving it in the inventory.
type RemoveAction struct {
	Item ecs.Entity
}

func (a *RemoveAction) MayRequireTick() bool {
	return true
}

func (a *RemoveAction) Verify(performer ecs.Entity, w *ecs.World) error {
	worn, ok := ecs.Get[game.WornItems](w, performer)
	if !ok || !slices.Contains(worn.Items, a.Item) {
		return userError("you aren't wearing %s.", game.Name(w, a.Item))
	}
	return nil
}

func (a *RemoveAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	ecs.MustGet[game.WornItems](w, performer).Remove(a.Item)
	item := game.Name(w, a.Item)
	return game.NewResult().
		Message(performer, fmt.Sprintf("You take off %s.", item)).
		ToRoom(w, performer, fmt.Sprintf("%s takes off %s.", capName(w, performer), item)).
		CompleteShouldTick(true)
}

func (a *RemoveAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

func wearParser() game.InputParser {
	return command("wear", `^wear(\s+(?P<item>.+))?$`, []string{"wear <item>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			item, err := game.FindTargetIn(w, "wear", c["item"], inventoryOf(w, performer))
			if err != nil {
				return nil, err
			}
			return &WearAction{Item: item}, nil
		})
}

func removeParser() game.InputParser {
	return command("remove", `^(remove|take\s+off)(\s+(?P<item>.+))?$`, []string{"remove <item>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			var worn []ecs.Entity
			if wi, ok := ecs.Get[game.WornItems](w, performer); ok {
				worn = wi.Items
			}
			item, err := game.FindTargetIn(w, "remove", c["item"], worn)
			if err != nil {
				return nil, err
			}
			return &RemoveAction{Item: item}, nil
		})
}
