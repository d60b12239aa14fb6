package actions

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
)

var (
	allPattern    = regexp.MustCompile(`^all(\s+of)?(\s+|$)`)
	litersPattern = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)\s*(l|liters?|litres?)?$`)
)

// PourAction moves fluid from Source into Target. Amount is in liters; zero
// pours as much as fits.
type PourAction struct {
	Source ecs.Entity
	Target ecs.Entity
	Amount float64
}

func (a *PourAction) MayRequireTick() bool {
	return true
}

func (a *PourAction) Verify(performer ecs.Entity, w *ecs.World) error {
	if a.Source == a.Target {
		return userError("you can't pour %s into itself.", game.Name(w, a.Source))
	}
	for _, e := range []ecs.Entity{a.Source, a.Target} {
		if !ecs.Has[game.FluidContainer](w, e) {
			return userError("%s is not a fluid container.", game.Name(w, e))
		}
		if !game.Perceives(w, performer, e) {
			return userError("you don't see %s here.", game.Name(w, e))
		}
	}
	if ecs.MustGet[game.FluidContainer](w, a.Source).Contents.Total() <= 0 {
		return userError("%s is empty.", game.Name(w, a.Source))
	}
	return nil
}

func (a *PourAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	src := ecs.MustGet[game.FluidContainer](w, a.Source)
	dst := ecs.MustGet[game.FluidContainer](w, a.Target)
	source, target := game.Name(w, a.Source), game.Name(w, a.Target)

	amount := min(src.Contents.Total(), dst.Space())
	if a.Amount > 0 {
		amount = min(amount, a.Amount)
	}
	if amount <= 0 {
		return game.ErrorResult(performer, fmt.Sprintf("You can't pour anything from %s into %s.", source, target))
	}

	poured := src.Contents.Remove(amount)
	if dst.Contents == nil {
		dst.Contents = game.Fluid{}
	}
	dst.Contents.Add(poured)

	fluid := "fluid"
	if types := poured.Types(); len(types) == 1 {
		fluid = game.CatalogOf(w).Fluid(types[0]).Name
	}
	return game.NewResult().
		Message(performer, fmt.Sprintf("You pour %.2fL of %s from %s into %s.", poured.Total(), fluid, source, target)).
		ToRoom(w, performer, fmt.Sprintf("%s pours %s from %s into %s.", capName(w, performer), fluid, source, target)).
		CompleteShouldTick(true)
}

func (a *PourAction) Interrupt(performer ecs.Entity, _ *ecs.World) game.ActionInterruptResult {
	return game.InterruptMessage(performer, "You stop pouring.")
}

// parsePourAmount reads "all", "0.5", "0.5L" or "2 liters". Zero means all.
func parsePourAmount(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" {
		return 0, nil
	}
	m := litersPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, game.ErrInvalidArgument("pour", "You can only pour 'all' or some amount of liters.")
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil || n <= 0 {
		return 0, game.ErrInvalidArgument("pour", "That is an invalid amount to pour.")
	}
	return n, nil
}

func pourTargets(w *ecs.World, performer ecs.Entity, verb, source, target string) (ecs.Entity, ecs.Entity, error) {
	src, err := game.FindTarget(w, performer, verb, source)
	if err != nil {
		return 0, 0, err
	}
	if target == "" {
		return 0, 0, game.ErrInvalidArgument(verb, fmt.Sprintf("Pour %s into what?", game.Name(w, src)))
	}
	dst, err := game.FindTarget(w, performer, verb, target)
	if err != nil {
		return 0, 0, err
	}
	return src, dst, nil
}

func pourParser() game.InputParser {
	return command("pour", `^pour(\s+(?P<amount>.+?)\s+from)?(\s+(?P<source>.+?)(\s+into\s+(?P<target>.+))?)?$`,
		[]string{"pour [all] <source> into <target>", "pour <liters> from <source> into <target>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			var amount float64
			if c["amount"] != "" {
				var err error
				if amount, err = parsePourAmount(c["amount"]); err != nil {
					return nil, err
				}
			}
			source := allPattern.ReplaceAllString(strings.ToLower(c["source"]), "")
			src, dst, err := pourTargets(w, performer, "pour", source, c["target"])
			if err != nil {
				return nil, err
			}
			return &PourAction{Source: src, Target: dst, Amount: amount}, nil
		})
}

func fillParser() game.InputParser {
	return command("fill", `^fill(\s+(?P<target>.+?)(\s+from\s+(?P<source>.+))?)?$`, []string{"fill <target> from <source>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			if c["target"] == "" {
				return nil, game.ErrInvalidArgument("fill", "Fill what?")
			}
			if c["source"] == "" {
				return nil, game.ErrInvalidArgument("fill", "Fill it from what?")
			}
			src, dst, err := pourTargets(w, performer, "fill", c["source"], c["target"])
			if err != nil {
				return nil, err
			}
			return &PourAction{Source: src, Target: dst}, nil
		})
}
