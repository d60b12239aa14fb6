package actions

import (
	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-mudengine/internal/notify"
)

// vitalsOnTick drains vitals at the rates of the VitalDecay resource. Running
// out of food or water costs health.
func vitalsOnTick(_ notify.Notification[game.TickNotification, notify.None], w *ecs.World) {
	decay, ok := ecs.Resource[game.VitalDecay](w)
	if !ok {
		return
	}
	for _, e := range ecs.Collect[game.Vitals](w) {
		if w.PendingDespawn(e) {
			continue
		}
		drain := func(t game.VitalType, amount float64) {
			if amount > 0 {
				game.ValueChange{Entity: e, ValueType: t, Operation: game.OpSubtract, Amount: amount}.Apply(w)
			}
		}
		drain(game.Satiety, decay.SatietyPerTick)
		drain(game.Hydration, decay.HydrationPerTick)
		drain(game.Energy, decay.EnergyPerTick)

		v, ok := ecs.Get[game.Vitals](w, e)
		if !ok {
			continue
		}
		if v.Satiety.Get() <= v.Satiety.Min() || v.Hydration.Get() <= v.Hydration.Min() {
			drain(game.Health, decay.StarvationPerTick)
		}
	}
}

// wanderOnTick sends idle wanderers through a random exit now and then.
func wanderOnTick(_ notify.Notification[game.TickNotification, notify.None], w *ecs.World) {
	rng := game.RandOf(w)
	for e, wb := range ecs.Query[game.WanderBehavior](w) {
		if game.HasQueuedAction(w, e) || ecs.Has[game.CombatState](w, e) || w.PendingDespawn(e) {
			continue
		}
		if rng.Float64() >= wb.MoveChancePerTick {
			continue
		}
		room, ok := game.RoomOf(w, e)
		if !ok {
			continue
		}
		exits := game.ConnectionsOf(w, room)
		if len(exits) == 0 {
			continue
		}
		conn := ecs.MustGet[game.Connection](w, exits[rng.IntN(len(exits))])
		game.QueueAction(w, e, &MoveAction{Direction: conn.Direction})
	}
}
