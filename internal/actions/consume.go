package actions

import (
	"fmt"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-mudengine/internal/notify"
)

const (
	// SatietyPerCalorie is how much satiety one calorie restores.
	SatietyPerCalorie = 0.01
	// HydrationPerLiter is how much hydration a liter of a factor 1 fluid restores.
	HydrationPerLiter = 50.0
	// DrinkSize is the most one drink takes from a container, in liters.
	DrinkSize = 0.5
)

// EatAction consumes an edible entity.
type EatAction struct {
	Item ecs.Entity

	eaten game.Calories
}

func (a *EatAction) MayRequireTick() bool {
	return true
}

func (a *EatAction) Verify(performer ecs.Entity, w *ecs.World) error {
	if !ecs.Has[game.Edible](w, a.Item) {
		return userError("you can't eat %s.", game.Name(w, a.Item))
	}
	if !game.Perceives(w, performer, a.Item) {
		return userError("you don't see %s here.", game.Name(w, a.Item))
	}
	return nil
}

func (a *EatAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	if cal, ok := ecs.Get[game.Calories](w, a.Item); ok {
		a.eaten = *cal
	}
	item := game.Name(w, a.Item)
	b := game.NewResult().
		Message(performer, fmt.Sprintf("You eat %s.", item)).
		ToRoom(w, performer, fmt.Sprintf("%s eats %s.", capName(w, performer), item))
	game.DespawnEntity(w, a.Item)
	return b.CompleteShouldTick(true)
}

func (a *EatAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

// DrinkAction drinks up to DrinkSize liters from a fluid container.
type DrinkAction struct {
	Container ecs.Entity

	drunk game.Fluid
}

func (a *DrinkAction) MayRequireTick() bool {
	return true
}

func (a *DrinkAction) Verify(performer ecs.Entity, w *ecs.World) error {
	fc, ok := ecs.Get[game.FluidContainer](w, a.Container)
	if !ok {
		return userError("you can't drink from %s.", game.Name(w, a.Container))
	}
	if !game.Perceives(w, performer, a.Container) {
		return userError("you don't see %s here.", game.Name(w, a.Container))
	}
	if fc.Contents.Total() <= 0 {
		return userError("%s is empty.", game.Name(w, a.Container))
	}
	return nil
}

func (a *DrinkAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	fc, ok := ecs.Get[game.FluidContainer](w, a.Container)
	if !ok || fc.Contents.Total() <= 0 {
		return game.ErrorResult(performer, fmt.Sprintf("%s is empty.", capName(w, a.Container)))
	}
	a.drunk = fc.Contents.Remove(DrinkSize)
	name := game.Name(w, a.Container)
	return game.NewResult().
		Message(performer, fmt.Sprintf("You drink from %s.", name)).
		ToRoom(w, performer, fmt.Sprintf("%s drinks from %s.", capName(w, performer), name)).
		CompleteShouldTick(true)
}

func (a *DrinkAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

// Hydration is the hydration the last drink restored.
func (a *DrinkAction) Hydration(w *ecs.World) float64 {
	cat := game.CatalogOf(w)
	var total float64
	for t, liters := range a.drunk {
		total += liters * HydrationPerLiter * cat.Fluid(t).HydrationFactor
	}
	return total
}

func increaseSatietyOnEat(n notify.Notification[game.AfterActionNotification, *EatAction], w *ecs.World) {
	if !n.Kind.Complete || !n.Kind.Successful || n.Contents.eaten <= 0 {
		return
	}
	game.VitalChange{
		Entity:    n.Kind.Performer,
		Vital:     game.Satiety,
		Operation: game.OpAdd,
		Amount:    float64(n.Contents.eaten) * SatietyPerCalorie,
		Messages: []game.VitalChangeMessage{
			{Recipient: n.Kind.Performer, Text: "That hit the spot!", Visualization: game.VisualizationFull},
		},
	}.Apply(w)
}

func increaseHydrationOnDrink(n notify.Notification[game.AfterActionNotification, *DrinkAction], w *ecs.World) {
	if !n.Kind.Complete || !n.Kind.Successful {
		return
	}
	amount := n.Contents.Hydration(w)
	if amount <= 0 {
		return
	}
	game.VitalChange{
		Entity:    n.Kind.Performer,
		Vital:     game.Hydration,
		Operation: game.OpAdd,
		Amount:    amount,
		Messages: []game.VitalChangeMessage{
			{Recipient: n.Kind.Performer, Text: "Refreshing!", Visualization: game.VisualizationFull},
		},
	}.Apply(w)
}

func eatParser() game.InputParser {
	return command("eat", `^eat(\s+(?P<item>.+))?$`, []string{"eat <item>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			item, err := game.FindTarget(w, performer, "eat", c["item"])
			if err != nil {
				return nil, err
			}
			return &EatAction{Item: item}, nil
		})
}

func drinkParser() game.InputParser {
	return command("drink", `^drink(\s+(from\s+)?(?P<container>.+))?$`, []string{"drink [from] <container>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			container, err := game.FindTarget(w, performer, "drink", c["container"])
			if err != nil {
				return nil, err
			}
			return &DrinkAction{Container: container}, nil
		})
}
