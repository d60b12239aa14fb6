package actions

import (
	"fmt"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
)

// HoldAction takes a carried item out into the performer's hands.
type HoldAction struct {
	Item ecs.Entity
}

func (a *HoldAction) MayRequireTick() bool {
	return true
}

func (a *HoldAction) Verify(performer ecs.Entity, w *ecs.World) error {
	held, ok := ecs.Get[game.HeldItems](w, performer)
	if !ok {
		return userError("you can't hold things.")
	}
	if !ecs.Has[game.Item](w, a.Item) {
		return userError("you can't hold %s.", game.Name(w, a.Item))
	}
	if loc, ok := game.LocationOf(w, a.Item); !ok || loc != performer {
		return userError("you don't have %s.", game.Name(w, a.Item))
	}
	if isWorn(w, performer, a.Item) {
		return userError("you'll have to take off %s before you can hold it.", game.Name(w, a.Item))
	}
	if held.Holds(a.Item) {
		return userError("you're already holding %s.", game.Name(w, a.Item))
	}
	if game.HandsFor(w, a.Item) > held.FreeHands(w) {
		return userError("you don't have enough free hands to hold %s.", game.Name(w, a.Item))
	}
	return nil
}

func (a *HoldAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	held := ecs.MustGet[game.HeldItems](w, performer)
	held.Items = append(held.Items, a.Item)
	item := game.Name(w, a.Item)
	return game.NewResult().
		Message(performer, fmt.Sprintf("You take out %s.", item)).
		ToRoom(w, performer, fmt.Sprintf("%s takes out %s.", capName(w, performer), item)).
		CompleteShouldTick(true)
}

func (a *HoldAction) Interrupt(performer ecs.Entity, _ *ecs.World) game.ActionInterruptResult {
	return game.InterruptMessage(performer, "You stop holding things.")
}

// UnholdAction puts a held item away, leaving it in the inventory.
type UnholdAction struct {
	Item ecs.Entity
}

func (a *UnholdAction) MayRequireTick() bool {
	return true
}

func (a *UnholdAction) Verify(performer ecs.Entity, w *ecs.World) error {
	if !isHeld(w, performer, a.Item) {
		return userError("you're not holding %s.", game.Name(w, a.Item))
	}
	return nil
}

func (a *UnholdAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	ecs.MustGet[game.HeldItems](w, performer).Remove(a.Item)
	item := game.Name(w, a.Item)
	return game.NewResult().
		Message(performer, fmt.Sprintf("You put away %s.", item)).
		ToRoom(w, performer, fmt.Sprintf("%s puts away %s.", capName(w, performer), item)).
		CompleteShouldTick(true)
}

func (a *UnholdAction) Interrupt(performer ecs.Entity, _ *ecs.World) game.ActionInterruptResult {
	return game.InterruptMessage(performer, "You stop putting things away.")
}

func isHeld(w *ecs.World, holder, item ecs.Entity) bool {
	held, ok := ecs.Get[game.HeldItems](w, holder)
	return ok && held.Holds(item)
}

func heldBy(w *ecs.World, holder ecs.Entity) []ecs.Entity {
	if held, ok := ecs.Get[game.HeldItems](w, holder); ok {
		return held.Items
	}
	return nil
}

func holdParser() game.InputParser {
	return command("hold", `^(hold|equip|wield|take\s+out)(\s+(?P<item>.+))?$`, []string{"hold <item>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			item, err := game.FindTargetIn(w, "hold", c["item"], inventoryOf(w, performer))
			if err != nil {
				return nil, err
			}
			return &HoldAction{Item: item}, nil
		})
}

func unholdParser() game.InputParser {
	return command("put away", `^(unhold|unequip|unwield|stow|put\s+away)(\s+(?P<item>.+))?$`, []string{"put away <item>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			item, err := game.FindTargetIn(w, "put away", c["item"], heldBy(w, performer))
			if err != nil {
				return nil, err
			}
			return &UnholdAction{Item: item}, nil
		})
}
