package game

import (
	"time"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/notify"
)

const (
	// maxDrainPasses bounds how often free actions are drained per call.
	maxDrainPasses = 32
	// maxDeferrals bounds how many prerequisites one entity may stack in a tick.
	maxDeferrals = 8
)

// Report summarizes one call to Process.
type Report struct {
	Ticked bool
	Steps  []Step
}

// IsAfk reports whether e is a player whose last input is older than the
// configured AFK timeout.
func IsAfk(w *ecs.World, e ecs.Entity, now time.Time) bool {
	p, ok := ecs.Get[Player](w, e)
	if !ok {
		return false
	}
	opts, ok := ecs.Resource[GameOptions](w)
	if !ok || opts.AfkTimeout <= 0 {
		return false
	}
	return now.Sub(p.LastInput) > opts.AfkTimeout
}

// ReadyToTick reports whether every present, non-AFK perceiving agent has
// committed an action. It holds trivially when every agent is AFK.
func ReadyToTick(w *ecs.World, now time.Time) bool {
	for e := range ecs.Query[MessageChannel](w) {
		if ecs.Has[ClientGone](w, e) || IsAfk(w, e, now) {
			continue
		}
		if !HasQueuedAction(w, e) {
			return false
		}
	}
	return true
}

func queuedEntities(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	for e, q := range ecs.Query[ActionQueue](w) {
		if len(q.entries) > 0 {
			out = append(out, e)
		}
	}
	return out
}

// runUntilPerformed runs e's head, following prerequisites queued by before
// handlers until something other than a deferral happens.
func runUntilPerformed(w *ecs.World, e ecs.Entity, r *Report) Step {
	var step Step
	for range maxDeferrals {
		step = RunHead(w, e)
		if step.Outcome != OutcomeIdle {
			r.Steps = append(r.Steps, step)
		}
		if step.Outcome != OutcomeDeferred {
			return step
		}
	}
	return step
}

// drain runs cancellations and every head action that does not need a tick,
// repeating while that makes progress.
func drain(w *ecs.World, r *Report) {
	for range maxDrainPasses {
		progressed := false
		for _, e := range queuedEntities(w) {
			q, _ := ecs.Get[ActionQueue](w, e)
			head, _ := q.Head()
			if !q.cancel && head.MayRequireTick() {
				continue
			}
			step := runUntilPerformed(w, e, r)
			if step.Outcome != OutcomeIdle {
				progressed = true
			}
		}
		if !progressed {
			return
		}
	}
}

// Process advances the simulation by at most one tick. Free actions are
// drained first; when every active agent has committed an action the head of
// each queue runs once in ascending entity order and, if any of them asked for
// time to pass, TickNotification fires and the clock advances.
func Process(w *ecs.World, now time.Time) Report {
	var r Report
	ecs.InsertResource(w, RealTime{Now: now})
	drain(w, &r)

	if ReadyToTick(w, now) {
		ticked := false
		for _, e := range queuedEntities(w) {
			if runUntilPerformed(w, e, &r).ShouldTick {
				ticked = true
			}
		}

		if ticked {
			notify.From(w).Send(w, TickNotification{Tick: w.TickCount() + 1}, notify.None{})
			w.AdvanceTick()
			if c, ok := ecs.Resource[Clock](w); ok {
				c.Now = c.Now.Tick()
			}
			r.Ticked = true
		}

		drain(w, &r)
	}

	removeDepartedClients(w)
	w.ApplyDespawns()
	return r
}

func removeDepartedClients(w *ecs.World) {
	for _, e := range ecs.Collect[ClientGone](w) {
		if HasQueuedAction(w, e) {
			continue
		}
		DespawnEntity(w, e)
	}
}
