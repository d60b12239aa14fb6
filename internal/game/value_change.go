package game

import (
	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/notify"
)

type ValueChangeOperation int

const (
	OpAdd ValueChangeOperation = iota
	OpSubtract
	OpMultiply
	OpSet
)

// ValueChange adjusts one vital of an entity, optionally telling it why.
type ValueChange struct {
	Entity    ecs.Entity
	ValueType VitalType
	Operation ValueChangeOperation
	Amount    float64
	Message   string
}

// VitalChangedNotification is sent after any vital is changed.
type VitalChangedNotification struct {
	Entity   ecs.Entity
	Vital    VitalType
	OldValue ConstrainedValue
	NewValue ConstrainedValue
}

func applyOperation(v *ConstrainedValue, op ValueChangeOperation, amount float64) {
	switch op {
	case OpAdd:
		v.Add(amount)
	case OpSubtract:
		v.Subtract(amount)
	case OpMultiply:
		v.Multiply(amount)
	case OpSet:
		v.Set(amount)
	}
}

// changeVital applies the operation, returning the old and new values.
func changeVital(w *ecs.World, e ecs.Entity, t VitalType, op ValueChangeOperation, amount float64) (ConstrainedValue, ConstrainedValue, bool) {
	vitals, ok := ecs.Get[Vitals](w, e)
	if !ok {
		return ConstrainedValue{}, ConstrainedValue{}, false
	}
	v := vitals.Value(t)
	old := *v
	applyOperation(v, op, amount)
	return old, *v, true
}

func announce(w *ecs.World, e ecs.Entity, t VitalType, old, updated ConstrainedValue) {
	notify.From(w).Send(w, VitalChangedNotification{Entity: e, Vital: t, OldValue: old, NewValue: updated}, notify.None{})
}

// Apply changes the value and reports it to the entity when a message is set.
// VitalChangedNotification is sent after the report.
func (c ValueChange) Apply(w *ecs.World) {
	old, updated, ok := changeVital(w, c.Entity, c.ValueType, c.Operation, c.Amount)
	if !ok {
		return
	}
	if c.Message != "" {
		SendMessage(w, c.Entity, ValueChangeDescription{
			Message:   c.Message,
			ValueType: c.ValueType,
			OldValue:  old,
			NewValue:  updated,
		})
	}
	announce(w, c.Entity, c.ValueType, old, updated)
}

// VitalChangeMessage is one message to send about a vital change.
type VitalChangeMessage struct {
	Recipient     ecs.Entity
	Text          string
	Visualization Visualization
}

// VitalChange is a ValueChange that can also be narrated to spectators.
type VitalChange struct {
	Entity    ecs.Entity
	Vital     VitalType
	Operation ValueChangeOperation
	Amount    float64
	Messages  []VitalChangeMessage
}

func (c VitalChange) Apply(w *ecs.World) {
	old, updated, ok := changeVital(w, c.Entity, c.Vital, c.Operation, c.Amount)
	if !ok {
		return
	}
	for _, m := range c.Messages {
		SendMessage(w, m.Recipient, VitalChangeDescription{
			Message:       m.Text,
			Vital:         c.Vital,
			OldValue:      old,
			NewValue:      updated,
			Visualization: m.Visualization,
		})
	}
	announce(w, c.Entity, c.Vital, old, updated)
}
