package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/notify"
)

// Outcome classifies one visit of the pipeline to an entity's queue.
type Outcome int

const (
	// OutcomeIdle means there was nothing to do.
	OutcomeIdle Outcome = iota
	// OutcomeDeferred means a before handler queued a prerequisite ahead of the action.
	OutcomeDeferred
	// OutcomeRejected means verification failed.
	OutcomeRejected
	// OutcomeCancelled means the head was interrupted and removed.
	OutcomeCancelled
	// OutcomePerformed means the action's Perform ran.
	OutcomePerformed
	// OutcomeFailed means the action panicked and was discarded.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeDeferred:
		return "deferred"
	case OutcomeRejected:
		return "rejected"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomePerformed:
		return "performed"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Step records one pipeline visit.
type Step struct {
	Entity     ecs.Entity
	Action     string
	Outcome    Outcome
	ShouldTick bool
	Complete   bool
	Successful bool
}

const somethingWentWrong = "Something went wrong."

func deliver(w *ecs.World, messages []Addressed) {
	for _, m := range messages {
		SendMessage(w, m.To, m.Message)
	}
}

// RunHead takes the head action of e through the pipeline once:
// verify and before the first time it runs, then perform, after and end.
func RunHead(w *ecs.World, e ecs.Entity) (step Step) {
	step.Entity = e
	q, ok := ecs.Get[ActionQueue](w, e)
	if !ok || len(q.entries) == 0 {
		return step
	}

	head := q.entries[0]
	action := head.action
	step.Action = ActionName(action)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		slog.Error("action aborted", "entity", e, "action", step.Action, "panic", r)
		if q, ok := ecs.Get[ActionQueue](w, e); ok {
			q.remove(action)
		}
		SendMessage(w, e, ErrorMessage{Text: somethingWentWrong})
		step = Step{Entity: e, Action: step.Action, Outcome: OutcomeFailed, Complete: true}
	}()

	if q.cancel {
		q.cancel = false
		q.remove(action)
		q.outcome = CancelDropped
		if head.started {
			q.outcome = CancelInterrupted
			deliver(w, action.Interrupt(e, w).Messages)
		}
		step.Outcome = OutcomeCancelled
		return step
	}

	bus := notify.From(w)
	if !head.started {
		if err := verify(w, bus, e, action); err != nil {
			q.remove(action)
			SendMessage(w, e, ErrorMessage{Text: userMessage(err)})
			bus.Send(w, ActionEndNotification{Performer: e}, action)
			step.Outcome = OutcomeRejected
			step.Complete = true
			return step
		}

		bus.Send(w, BeforeActionNotification{Performer: e}, action)

		// a before handler may have queued a prerequisite or cancelled
		q, ok = ecs.Get[ActionQueue](w, e)
		if !ok || len(q.entries) == 0 || q.entries[0].action != action || q.cancel {
			step.Outcome = OutcomeDeferred
			return step
		}
		q.entries[0].started = true
	}

	result := action.Perform(e, w)
	step.Outcome = OutcomePerformed
	step.ShouldTick = result.ShouldTick
	step.Complete = result.Complete
	step.Successful = result.Successful

	deliver(w, result.Messages)

	bus.Send(w, AfterActionNotification{
		Performer:  e,
		Complete:   result.Complete,
		Successful: result.Successful,
	}, action)

	if result.Complete {
		if q, ok := ecs.Get[ActionQueue](w, e); ok {
			q.remove(action)
		}
		bus.Send(w, ActionEndNotification{Performer: e, Successful: result.Successful}, action)
	}

	return step
}

func verify(w *ecs.World, bus *notify.Bus, e ecs.Entity, action Action) error {
	if v, ok := action.(Verifier); ok {
		if err := v.Verify(e, w); err != nil {
			return err
		}
	}
	return bus.Verify(w, VerifyActionNotification{Performer: e}, action)
}

func userMessage(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Error()
	}
	slog.Warn("verification failed with non-user error", "error", err)
	return somethingWentWrong
}
