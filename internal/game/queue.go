package game

import (
	"slices"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

type queuedAction struct {
	action  Action
	started bool
}

// CancelOutcome describes the most recent cancellation of a queue.
type CancelOutcome int

const (
	CancelNone CancelOutcome = iota
	// CancelDropped means queued actions were dropped before any had started.
	CancelDropped
	// CancelInterrupted means a started action was interrupted.
	CancelInterrupted
)

// ActionQueue holds the pending actions of an entity. The head is the action
// currently executing; the rest run in FIFO order.
type ActionQueue struct {
	entries []queuedAction
	cancel  bool
	outcome CancelOutcome
}

func (q *ActionQueue) Len() int {
	return len(q.entries)
}

func (q *ActionQueue) Head() (Action, bool) {
	if len(q.entries) == 0 {
		return nil, false
	}
	return q.entries[0].action, true
}

func (q *ActionQueue) Actions() []Action {
	out := make([]Action, len(q.entries))
	for i, qa := range q.entries {
		out[i] = qa.action
	}
	return out
}

// TakeCancelOutcome returns the outcome of the last cancellation and resets it.
func (q *ActionQueue) TakeCancelOutcome() CancelOutcome {
	o := q.outcome
	q.outcome = CancelNone
	return o
}

func (q *ActionQueue) remove(a Action) {
	q.entries = slices.DeleteFunc(q.entries, func(qa queuedAction) bool { return qa.action == a })
}

func queueFor(w *ecs.World, e ecs.Entity) *ActionQueue {
	q, ok := ecs.Get[ActionQueue](w, e)
	if !ok {
		ecs.Attach(w, e, ActionQueue{})
		q, _ = ecs.Get[ActionQueue](w, e)
	}
	return q
}

// QueueAction appends a to e's queue. Actions for departed clients are discarded.
func QueueAction(w *ecs.World, e ecs.Entity, a Action) bool {
	if ecs.Has[ClientGone](w, e) || !w.Alive(e) {
		return false
	}
	if _, ok := a.(QueueCanceller); ok {
		CancelActions(w, e)
	}
	q := queueFor(w, e)
	q.entries = append(q.entries, queuedAction{action: a})
	return true
}

// QueueFirst puts a at the head of e's queue, ahead of the current action.
func QueueFirst(w *ecs.World, e ecs.Entity, a Action) bool {
	if ecs.Has[ClientGone](w, e) || !w.Alive(e) {
		return false
	}
	q := queueFor(w, e)
	q.entries = slices.Insert(q.entries, 0, queuedAction{action: a})
	return true
}

// CancelActions drops everything behind the head of e's queue and flags the
// head to be interrupted the next time the pipeline visits e.
func CancelActions(w *ecs.World, e ecs.Entity) {
	q, ok := ecs.Get[ActionQueue](w, e)
	if !ok || len(q.entries) == 0 {
		return
	}
	q.entries = q.entries[:1]
	q.cancel = true
}

// HasQueuedAction reports whether e has anything queued.
func HasQueuedAction(w *ecs.World, e ecs.Entity) bool {
	q, ok := ecs.Get[ActionQueue](w, e)
	return ok && len(q.entries) > 0
}
