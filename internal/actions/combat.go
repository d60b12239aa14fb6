package actions

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-mudengine/internal/notify"
)

const (
	baseHitChance  = 0.5
	hitChancePer   = 0.05
	minHitChance   = 0.05
	maxHitChance   = 0.95
	thicknessBlock = 1.0
)

// AttackAction strikes Target once with the performer's weapon.
type AttackAction struct {
	Target ecs.Entity
}

func (a *AttackAction) MayRequireTick() bool {
	return true
}

func (a *AttackAction) Verify(performer ecs.Entity, w *ecs.World) error {
	if a.Target == performer {
		return userError("you can't attack yourself.")
	}
	if !w.Alive(a.Target) || w.PendingDespawn(a.Target) || !game.Perceives(w, performer, a.Target) {
		return userError("you don't see them here.")
	}
	if !ecs.Has[game.Vitals](w, a.Target) {
		return userError("you can't attack %s.", game.Name(w, a.Target))
	}
	return nil
}

// weaponOf returns the weapon performer fights with: an innate weapon, then
// the first carried weapon, then bare fists.
func weaponOf(w *ecs.World, performer ecs.Entity) game.Weapon {
	if wp, ok := ecs.Get[game.Weapon](w, performer); ok && !ecs.Has[game.Item](w, performer) {
		return *wp
	}
	// Held weapons come before anything else carried.
	for _, e := range append(slices.Clone(heldBy(w, performer)), game.ContentsOf(w, performer)...) {
		if wp, ok := ecs.Get[game.Weapon](w, e); ok {
			return *wp
		}
	}
	return game.DefaultFists
}

func skillOf(w *ecs.World, e ecs.Entity, skill game.Skill) float64 {
	stats, ok := ecs.Get[game.Stats](w, e)
	if !ok {
		return 0
	}
	return stats.SkillValue(game.CatalogOf(w), skill)
}

// pickBodyPart chooses where a blow lands, weighted by the catalog.
func pickBodyPart(w *ecs.World) game.BodyPart {
	weights := game.CatalogOf(w).BodyPartWeights
	parts := slices.Sorted(maps.Keys(weights))
	var total float64
	for _, p := range parts {
		total += weights[p]
	}
	if total <= 0 {
		return game.Torso
	}
	roll := game.RandOf(w).Float64() * total
	for _, p := range parts {
		roll -= weights[p]
		if roll < 0 {
			return p
		}
	}
	return parts[len(parts)-1]
}

func (a *AttackAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	game.EnterCombat(w, performer, a.Target)

	cat := game.CatalogOf(w)
	rng := game.RandOf(w)
	weapon := weaponOf(w, performer)
	attacker, target := capName(w, performer), game.Name(w, a.Target)

	chance := baseHitChance + hitChancePer*(skillOf(w, performer, cat.WeaponTypes[weapon.Type].Skill)-skillOf(w, a.Target, game.Dodging))
	chance = min(max(chance, minHitChance), maxHitChance)
	if rng.Float64() >= chance {
		return game.NewResult().
			Message(performer, fmt.Sprintf("You miss %s.", target)).
			Message(a.Target, fmt.Sprintf("%s misses you.", attacker)).
			ToRoom(w, performer, fmt.Sprintf("%s misses %s.", attacker, target), a.Target).
			CompleteShouldTick(true)
	}

	part := pickBodyPart(w)
	damage := float64(weapon.MinDamage)
	if spread := weapon.MaxDamage - weapon.MinDamage; spread > 0 {
		damage += float64(rng.IntN(spread + 1))
	}
	if worn, ok := ecs.Get[game.WornItems](w, a.Target); ok {
		if armor, ok := worn.WearerOf(w, part); ok {
			damage -= ecs.MustGet[game.Wearable](w, armor).Thickness * thicknessBlock
		}
	}
	damage = max(damage, 0)

	hitVerb := weapon.HitVerb
	if hitVerb == "" {
		hitVerb = "hit"
	}
	messages := []game.VitalChangeMessage{
		{Recipient: performer, Text: fmt.Sprintf("You %s %s in the %s.", hitVerb, target, part), Visualization: game.VisualizationAbbreviated},
		{Recipient: a.Target, Text: fmt.Sprintf("%s %ss you in the %s.", attacker, hitVerb, part), Visualization: game.VisualizationFull},
	}
	if room, ok := game.RoomOf(w, performer); ok {
		for _, e := range game.ContentsOf(w, room) {
			if e == performer || e == a.Target || !game.CanReceiveMessages(w, e) {
				continue
			}
			messages = append(messages, game.VitalChangeMessage{
				Recipient:     e,
				Text:          fmt.Sprintf("%s %ss %s in the %s.", attacker, hitVerb, target, part),
				Visualization: game.VisualizationAbbreviated,
			})
		}
	}

	game.VitalChange{
		Entity:    a.Target,
		Vital:     game.Health,
		Operation: game.OpSubtract,
		Amount:    damage,
		Messages:  messages,
	}.Apply(w)

	return game.NewResult().CompleteShouldTick(true)
}

func (a *AttackAction) Interrupt(performer ecs.Entity, _ *ecs.World) game.ActionInterruptResult {
	return game.InterruptMessage(performer, "You stop attacking.")
}

// StopAction cancels whatever the performer is doing.
type StopAction struct{}

func (a *StopAction) CancelsQueue() {}

func (a *StopAction) MayRequireTick() bool {
	return false
}

func (a *StopAction) Perform(performer ecs.Entity, w *ecs.World) game.ActionResult {
	outcome := game.CancelNone
	if q, ok := ecs.Get[game.ActionQueue](w, performer); ok {
		outcome = q.TakeCancelOutcome()
	}
	// An interrupted action has already said how it stopped.
	switch outcome {
	case game.CancelInterrupted:
		return game.NewResult().CompleteNoTick(true)
	case game.CancelDropped:
		return game.NewResult().Message(performer, "You stop what you were doing.").CompleteNoTick(true)
	}
	return game.NewResult().Message(performer, "You aren't doing anything.").CompleteNoTick(false)
}

func (a *StopAction) Interrupt(ecs.Entity, *ecs.World) game.ActionInterruptResult {
	return game.NoInterrupt()
}

func attackParser() game.InputParser {
	return command("attack", `^(attack|hit|kill|k)(\s+(?P<target>.+))?$`, []string{"attack <target>"},
		func(c game.Captures, performer ecs.Entity, w *ecs.World) (game.Action, error) {
			target, err := game.FindTarget(w, performer, "attack", c["target"])
			if err != nil {
				return nil, err
			}
			return &AttackAction{Target: target}, nil
		})
}

func stopParser() game.InputParser {
	return simple(`^(stop|cancel)$`, "stop", func() game.Action { return &StopAction{} })
}

// attackOnTick makes entities that defend themselves strike back at an
// opponent they can still see, and drop out of combat when none are left.
func attackOnTick(_ notify.Notification[game.TickNotification, notify.None], w *ecs.World) {
	for _, e := range ecs.Collect[game.SelfDefenseBehavior](w) {
		cs, ok := ecs.Get[game.CombatState](w, e)
		if !ok || game.HasQueuedAction(w, e) || w.PendingDespawn(e) {
			continue
		}
		var target ecs.Entity
		for _, o := range cs.Opponents {
			if w.Alive(o) && !w.PendingDespawn(o) && game.Perceives(w, e, o) {
				target = o
				break
			}
		}
		if target == 0 {
			game.LeaveCombat(w, e)
			continue
		}
		game.QueueAction(w, e, &AttackAction{Target: target})
	}
}

// handleDeath ends the fight for anyone whose health ran out. Creatures are
// removed and drop what they carried; players wake up in the spawn room.
func handleDeath(n notify.Notification[game.VitalChangedNotification, notify.None], w *ecs.World) {
	e := n.Kind.Entity
	if n.Kind.Vital != game.Health || n.Kind.NewValue.Get() > n.Kind.NewValue.Min() || n.Kind.OldValue.Get() <= n.Kind.OldValue.Min() {
		return
	}

	name := capName(w, e)
	if room, ok := game.RoomOf(w, e); ok {
		for _, other := range game.ContentsOf(w, room) {
			if other != e {
				game.SendMessage(w, other, game.Message{Text: fmt.Sprintf("%s dies.", name)})
			}
		}
	}
	game.LeaveCombat(w, e)
	game.CancelActions(w, e)

	if ecs.Has[game.Player](w, e) {
		game.SendMessage(w, e, game.Message{Text: "You die."})
		if v, ok := ecs.Get[game.Vitals](w, e); ok {
			*v = game.NewVitals()
		}
		if spawn, err := game.FindSpawnRoom(w); err == nil {
			game.MoveEntity(w, e, spawn)
			game.QueueAction(w, e, NewGlance())
		}
		return
	}

	if loc, ok := game.LocationOf(w, e); ok {
		if worn, ok := ecs.Get[game.WornItems](w, e); ok {
			worn.Items = nil
		}
		for _, item := range game.ContentsOf(w, e) {
			game.MoveEntity(w, item, loc)
		}
	}
	game.DespawnEntity(w, e)
}
