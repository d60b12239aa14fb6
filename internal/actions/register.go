package actions

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-mudengine/internal/notify"
)

// Register installs every command parser and rule handler into w. It must be
// called once per world after game.Setup.
func Register(w *ecs.World) {
	game.ParsersFor(w).Register(
		lookParser(),
		moveParser(),
		sayParser(),
		waitParser(),
		helpParser(),
		inventoryParser(),
		wornParser(),
		vitalsParser(),
		statsParser(),
		playersParser(),
		mapParser(),
		getParser(),
		dropParser(),
		putParser(),
		openParser(),
		closeParser(),
		eatParser(),
		drinkParser(),
		wearParser(),
		removeParser(),
		holdParser(),
		unholdParser(),
		pourParser(),
		fillParser(),
		attackParser(),
		stopParser(),
	)

	bus := notify.From(w)
	notify.HandleVerify(bus, limitContainerContentsOnGet)
	notify.HandleVerify(bus, limitContainerContentsOnPut)
	notify.Handle(bus, autoOpenDoor)
	notify.Handle(bus, lookAfterMove)
	notify.Handle(bus, greetOnArrival)
	notify.Handle(bus, increaseSatietyOnEat)
	notify.Handle(bus, increaseHydrationOnDrink)
	notify.Handle(bus, vitalsOnTick)
	notify.Handle(bus, wanderOnTick)
	notify.Handle(bus, attackOnTick)
	notify.Handle(bus, handleDeath)
}

// command builds a case-insensitive pattern parser.
func command(verb, expr string, formats []string, build func(game.Captures, ecs.Entity, *ecs.World) (game.Action, error)) *game.PatternParser {
	return &game.PatternParser{
		Verb:    verb,
		Pattern: regexp.MustCompile(`(?i)` + expr),
		Formats: formats,
		Build:   build,
	}
}

// simple builds a parser for a verb that takes no arguments.
func simple(expr, format string, build func() game.Action) *game.PatternParser {
	return command(format, expr, []string{format}, func(game.Captures, ecs.Entity, *ecs.World) (game.Action, error) {
		return build(), nil
	})
}

func capName(w *ecs.World, e ecs.Entity) string {
	return game.Capitalize(game.Name(w, e))
}

func userError(format string, args ...any) error {
	return game.NewUserError(game.Capitalize(fmt.Sprintf(format, args...)))
}
