package actions

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-mudengine/internal/notify"
)

// GetAction picks up Item, from Container when it is set.
type GetAction struct {
	Item      ecs.Entity
	Container ecs.Entity
}

func (a *GetAction) MayRequireTick() bool {
	return true
}

func (a *GetAction) Verify(performer ecs.Entity, w *ecs.World) error {
	if a.Item == performer {
		return userError("you can't pick yourself up.")
	}
	if !ecs.Has[game.Item](w, a.Item) {
		return userError("you can't pick up %s.", game.Name(w, a.Item))
	}
	loc, ok := game.LocationOf(w, a.Item)
	switch {
	case ok && loc == performer:
		return userError("you already have %s.", game.Name(w, a.Item))
	case a.Container != 0 && loc != a.Container:
		return userError("%s isn't in %s.", game.Name(w, a.Item), game.Name(w, a.Container))
	case a.Container == 0 && !game.Perceives(w, performer, a.Item):
		return userError("you don't see %s here.", game.Name(w, a.Item))
	}
	if a.Container != 0 {
		if a.Container == performer || ecs.Has[game.Room](w, a.Container) ||
			ecs.Has[game.Player](w, a.Container) || game.IsLiving(w, a.Container) {
			return userError("you can't take things from %s.", game.Name(w, a.Container))
		}
		if err := verifyOpen(w, a.Container); err != nil {
			return err
		}
	}
	if ok && isWorn(w, loc, a.Item) {
		return userError("%s is being worn.", game.Name(w, a.Item))
	}
	return nil
}

func (a *GetAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	item := game.Name(w, a.Item)
	b := game.NewResult()
	game.MoveEntity(w, a.Item, performer)
	if a.Container != 0 {
		container := game.Name(w, a.Container)
		b.Message(performer, fmt.Sprintf("You take %s from %s.", item, container))
		b.ToRoom(w, performer, fmt.Sprintf("%s takes %s from %s.", capName(w, performer), item, container))
	} else {
		b.Message(performer, fmt.Sprintf("You pick up %s.", item))
		b.ToRoom(w, performer, fmt.Sprintf("%s picks up %s.", capName(w, performer), item))
	}
	return b.CompleteShouldTick(true)
}

func (a *GetAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

// DropAction puts Item from the performer's inventory on the floor.
type DropAction struct {
	Item ecs.Entity
}

func (a *DropAction) MayRequireTick() bool {
	return true
}

func (a *DropAction) Verify(performer ecs.Entity, w *ecs.World) error {
	return verifyCarried(w, performer, a.Item)
}

func (a *DropAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	loc, ok := game.LocationOf(w, performer)
	if !ok {
		return game.ErrorResult(performer, "There is nowhere to drop it.")
	}
	item := game.Name(w, a.Item)
	game.MoveEntity(w, a.Item, loc)
	return game.NewResult().
		Message(performer, fmt.Sprintf("You drop %s.", item)).
		ToRoom(w, performer, fmt.Sprintf("%s drops %s.", capName(w, performer), item)).
		CompleteShouldTick(true)
}

func (a *DropAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

// PutAction moves Item from the performer's inventory into Container.
type PutAction struct {
	Item      ecs.Entity
	Container ecs.Entity
}

func (a *PutAction) MayRequireTick() bool {
	return true
}

func (a *PutAction) Verify(performer ecs.Entity, w *ecs.World) error {
	if err := verifyCarried(w, performer, a.Item); err != nil {
		return err
	}
	if a.Item == a.Container {
		return userError("you can't put %s inside itself.", game.Name(w, a.Item))
	}
	if a.Container == performer || !ecs.Has[game.Container](w, a.Container) ||
		ecs.Has[game.Room](w, a.Container) || game.IsLiving(w, a.Container) {
		return userError("you can't put things in %s.", game.Name(w, a.Container))
	}
	return verifyOpen(w, a.Container)
}

func (a *PutAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	item, container := game.Name(w, a.Item), game.Name(w, a.Container)
	game.MoveEntity(w, a.Item, a.Container)
	return game.NewResult().
		Message(performer, fmt.Sprintf("You put %s in %s.", item, container)).
		ToRoom(w, performer, fmt.Sprintf("%s puts %s in %s.", capName(w, performer), item, container)).
		CompleteShouldTick(true)
}

func (a *PutAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

func verifyCarried(w *ecs.World, performer, item ecs.Entity) error {
	if loc, ok := game.LocationOf(w, item); !ok || loc != performer {
		return userError("you don't have %s.", game.Name(w, item))
	}
	if isWorn(w, performer, item) {
		return userError("you need to take off %s first.", game.Name(w, item))
	}
	return nil
}

// isWorn reports whether holder is wearing item.
func isWorn(w *ecs.World, holder, item ecs.Entity) bool {
	worn, ok := ecs.Get[game.WornItems](w, holder)
	return ok && slices.Contains(worn.Items, item)
}

func verifyOpen(w *ecs.World, e ecs.Entity) error {
	if open, ok := ecs.Get[game.OpenState](w, e); ok && !open.Open {
		return userError("%s is closed.", game.Name(w, e))
	}
	return nil
}

// checkCapacity reports whether item fits in container's volume and weight limits.
func checkCapacity(w *ecs.World, performer, item, container ecs.Entity) error {
	c, ok := ecs.Get[game.Container](w, container)
	if !ok {
		return nil
	}
	var volume, weight float64
	for _, e := range c.Entities() {
		volume += game.VolumeOf(w, e)
		weight += game.WeightOf(w, e)
	}
	if c.MaxVolume > 0 && volume+game.VolumeOf(w, item) > c.MaxVolume {
		return userError("%s is too full.", game.Name(w, container))
	}
	if c.MaxWeight > 0 && weight+game.WeightOf(w, item) > c.MaxWeight {
		holder := game.Name(w, container)
		if container == performer {
			holder = "you"
		}
		return userError("%s is too heavy for %s.", game.Name(w, item), holder)
	}
	return nil
}

func limitContainerContentsOnGet(n notify.Notification[game.VerifyActionNotification, *GetAction], w *ecs.World) error {
	return checkCapacity(w, n.Kind.Performer, n.Contents.Item, n.Kind.Performer)
}

func limitContainerContentsOnPut(n notify.Notification[game.VerifyActionNotification, *PutAction], w *ecs.World) error {
	return checkCapacity(w, n.Kind.Performer, n.Contents.Item, n.Contents.Container)
}

// inventoryOf lists what performer carries.
func inventoryOf(w *ecs.World, performer ecs.Entity) []ecs.Entity {
	return game.ContentsOf(w, performer)
}

// surroundingsOf lists what is around performer, excluding itself.
func surroundingsOf(w *ecs.World, performer ecs.Entity) []ecs.Entity {
	loc, ok := game.LocationOf(w, performer)
	if !ok {
		return nil
	}
	return slices.DeleteFunc(game.ContentsOf(w, loc), func(e ecs.Entity) bool { return e == performer })
}

func getParser() game.InputParser {
	return command("get", `^(get|take)(\s+(?P<item>.+?)(\s+from\s+(?P<container>.+))?)?$`, []string{"get <item>", "get <item> from <container>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			if c["container"] == "" {
				item, err := game.FindTargetIn(w, "get", c["item"], surroundingsOf(w, performer))
				if err != nil {
					return nil, err
				}
				return &GetAction{Item: item}, nil
			}
			container, err := game.FindTarget(w, performer, "get from", c["container"])
			if err != nil {
				return nil, err
			}
			item, err := game.FindTargetIn(w, "get", c["item"], game.ContentsOf(w, container))
			if err != nil {
				return nil, err
			}
			return &GetAction{Item: item, Container: container}, nil
		})
}

func dropParser() game.InputParser {
	return command("drop", `^drop(\s+(?P<item>.+))?$`, []string{"drop <item>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			item, err := game.FindTargetIn(w, "drop", c["item"], inventoryOf(w, performer))
			if err != nil {
				return nil, err
			}
			return &DropAction{Item: item}, nil
		})
}

func putParser() game.InputParser {
	return command("put", `^put(\s+(?P<item>.+?)(\s+(in|into|inside)\s+(?P<container>.+))?)?$`, []string{"put <item> in <container>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			item, err := game.FindTargetIn(w, "put", c["item"], inventoryOf(w, performer))
			if err != nil {
				return nil, err
			}
			if c["container"] == "" {
				return nil, game.ErrInvalidArgument("put", fmt.Sprintf("Put %s in what?", game.Name(w, item)))
			}
			container, err := game.FindTarget(w, performer, "put in", c["container"])
			if err != nil {
				return nil, err
			}
			return &PutAction{Item: item, Container: container}, nil
		})
}
