package actions

import (
	"slices"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
)

// MapSize is the edge length of the map shown by the map command.
const MapSize = 5

// infoAction reports something to the performer without taking time.
type infoAction struct {
	describe func(performer ecs.Entity, w *ecs.World) (game.GameMessage, string)
}

func (a *infoAction) MayRequireTick() bool {
	return false
}

func (a *infoAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	msg, failure := a.describe(performer, w)
	if msg == nil {
		return game.ErrorResult(performer, failure)
	}
	return game.NewResult().With(performer, msg).CompleteNoTick(true)
}

func (a *infoAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

type (
	HelpAction      struct{ infoAction }
	InventoryAction struct{ infoAction }
	WornAction      struct{ infoAction }
	VitalsAction    struct{ infoAction }
	StatsAction     struct{ infoAction }
	PlayersAction   struct{ infoAction }
	MapAction       struct{ infoAction }
)

func NewHelpAction() *HelpAction {
	return &HelpAction{infoAction{describe: func(performer ecs.Entity, w *ecs.World) (game.GameMessage, string) {
		var formats []string
		for _, p := range game.FindParsersRelevantFor(w, performer) {
			formats = append(formats, p.InputFormats()...)
			formats = append(formats, p.InputFormatsFor(performer, w)...)
		}
		return game.HelpDescription{Formats: slices.Compact(formats)}, ""
	}}}
}

func NewInventoryAction() *InventoryAction {
	return &InventoryAction{infoAction{describe: func(performer ecs.Entity, w *ecs.World) (game.GameMessage, string) {
		c, ok := ecs.Get[game.Container](w, performer)
		if !ok {
			return nil, "You can't carry anything."
		}
		worn, _ := ecs.Get[game.WornItems](w, performer)
		desc := game.InventoryDescription{Items: []string{}, MaxWeight: c.MaxWeight}
		for _, e := range c.Entities() {
			name := game.Name(w, e)
			if d, ok := ecs.Get[game.Description](w, e); ok {
				name = d.Indefinite()
			}
			if worn != nil && slices.Contains(worn.Items, e) {
				name += " (worn)"
			}
			if isHeld(w, performer, e) {
				name += " (held)"
			}
			desc.Items = append(desc.Items, name)
			desc.TotalWeight += game.WeightOf(w, e)
		}
		return desc, ""
	}}}
}

func NewWornAction() *WornAction {
	return &WornAction{infoAction{describe: func(performer ecs.Entity, w *ecs.World) (game.GameMessage, string) {
		worn, ok := ecs.Get[game.WornItems](w, performer)
		if !ok {
			return nil, "You can't wear anything."
		}
		desc := game.WornItemsDescription{Items: []game.WornItem{}}
		for _, e := range worn.Items {
			item := game.WornItem{Name: game.Name(w, e)}
			if wearable, ok := ecs.Get[game.Wearable](w, e); ok {
				item.BodyParts = wearable.BodyParts
			}
			desc.Items = append(desc.Items, item)
		}
		return desc, ""
	}}}
}

func NewVitalsAction() *VitalsAction {
	return &VitalsAction{infoAction{describe: func(performer ecs.Entity, w *ecs.World) (game.GameMessage, string) {
		v, ok := ecs.Get[game.Vitals](w, performer)
		if !ok {
			return nil, "You don't have any vitals."
		}
		return game.VitalsDescription{Health: v.Health, Satiety: v.Satiety, Hydration: v.Hydration, Energy: v.Energy}, ""
	}}}
}

func NewStatsAction() *StatsAction {
	return &StatsAction{infoAction{describe: func(performer ecs.Entity, w *ecs.World) (game.GameMessage, string) {
		desc := game.StatsFor(w, performer)
		if desc == nil {
			return nil, "You don't have any stats."
		}
		return *desc, ""
	}}}
}

func NewPlayersAction() *PlayersAction {
	return &PlayersAction{infoAction{describe: func(performer ecs.Entity, w *ecs.World) (game.GameMessage, string) {
		return game.DescribePlayers(w, performer, game.RealNow(w)), ""
	}}}
}

func NewMapAction() *MapAction {
	return &MapAction{infoAction{describe: func(performer ecs.Entity, w *ecs.World) (game.GameMessage, string) {
		return game.MapFor(w, performer, MapSize), ""
	}}}
}

func helpParser() game.InputParser {
	return simple(`^(help|\?)$`, "help", func() game.Action { return NewHelpAction() })
}

func inventoryParser() game.InputParser {
	return simple(`^(i|inv|inventory)$`, "inventory", func() game.Action { return NewInventoryAction() })
}

func wornParser() game.InputParser {
	return simple(`^(worn|equipment|eq)$`, "worn", func() game.Action { return NewWornAction() })
}

func vitalsParser() game.InputParser {
	return simple(`^vitals$`, "vitals", func() game.Action { return NewVitalsAction() })
}

func statsParser() game.InputParser {
	return simple(`^(stats|score)$`, "stats", func() game.Action { return NewStatsAction() })
}

func playersParser() game.InputParser {
	return simple(`^(players|who)$`, "players", func() game.Action { return NewPlayersAction() })
}

func mapParser() game.InputParser {
	return simple(`^(map|m)$`, "map", func() game.Action { return NewMapAction() })
}
