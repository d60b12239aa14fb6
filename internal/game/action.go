package game

import (
	"reflect"
	"strings"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

// Action is a request to change the world on behalf of a performing entity.
// Implementations are pointer types so the pipeline can track them by identity.
type Action interface {
	// Perform mutates the world and reports what happened.
	Perform(performer ecs.Entity, w *ecs.World) ActionResult
	// Interrupt reports what to tell entities when the action is cancelled
	// after it has started. It must not change the world.
	Interrupt(performer ecs.Entity, w *ecs.World) ActionInterruptResult
	// MayRequireTick reports whether completing the action can advance time.
	MayRequireTick() bool
}

// Verifier is implemented by actions that check their own preconditions
// before verify handlers run.
type Verifier interface {
	Verify(performer ecs.Entity, w *ecs.World) error
}

// QueueCanceller is implemented by actions that cancel everything queued
// before them when they are queued.
type QueueCanceller interface {
	CancelsQueue()
}

// UserError is a failure whose message is shown to the performer.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// ActionName is a short lowercase name for the action's type, e.g. "move".
func ActionName(a Action) string {
	t := reflect.TypeOf(a)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(strings.TrimSuffix(t.Name(), "Action"))
}

// Addressed is a message bound for one entity.
type Addressed struct {
	To      ecs.Entity
	Message GameMessage
}

// ActionResult is what an action produced when performed.
type ActionResult struct {
	Messages   []Addressed
	ShouldTick bool
	Complete   bool
	Successful bool
}

// ResultBuilder accumulates messages for an ActionResult.
type ResultBuilder struct {
	messages []Addressed
}

func NewResult() *ResultBuilder {
	return &ResultBuilder{}
}

func (b *ResultBuilder) With(to ecs.Entity, msg GameMessage) *ResultBuilder {
	b.messages = append(b.messages, Addressed{To: to, Message: msg})
	return b
}

func (b *ResultBuilder) Message(to ecs.Entity, text string) *ResultBuilder {
	return b.With(to, Message{Text: text})
}

func (b *ResultBuilder) Error(to ecs.Entity, text string) *ResultBuilder {
	return b.With(to, ErrorMessage{Text: text})
}

// ToRoom sends text to every entity that can receive messages in the room
// containing about, except those listed. Recipients are chosen now, so call
// it before or after a move depending on which room should hear it.
func (b *ResultBuilder) ToRoom(w *ecs.World, about ecs.Entity, text string, except ...ecs.Entity) *ResultBuilder {
	room, ok := RoomOf(w, about)
	if !ok {
		return b
	}
	for _, e := range ContentsOf(w, room) {
		if e == about || containsEntity(except, e) || !CanReceiveMessages(w, e) {
			continue
		}
		b.Message(e, text)
	}
	return b
}

func containsEntity(list []ecs.Entity, e ecs.Entity) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

// CompleteShouldTick finishes an action whose completion advances time.
func (b *ResultBuilder) CompleteShouldTick(successful bool) ActionResult {
	return ActionResult{Messages: b.messages, ShouldTick: true, Complete: true, Successful: successful}
}

// CompleteNoTick finishes an action that takes no time.
func (b *ResultBuilder) CompleteNoTick(successful bool) ActionResult {
	return ActionResult{Messages: b.messages, Complete: true, Successful: successful}
}

// Incomplete leaves the action at the head of the queue to run again next tick.
func (b *ResultBuilder) Incomplete() ActionResult {
	return ActionResult{Messages: b.messages, ShouldTick: true, Successful: true}
}

// ErrorResult fails an action without taking time.
func ErrorResult(to ecs.Entity, text string) ActionResult {
	return NewResult().Error(to, text).CompleteNoTick(false)
}

// ActionInterruptResult is what to tell entities when an action is cancelled.
type ActionInterruptResult struct {
	Messages []Addressed
}

func InterruptMessage(to ecs.Entity, text string) ActionInterruptResult {
	return ActionInterruptResult{Messages: []Addressed{{To: to, Message: Message{Text: text}}}}
}

func NoInterrupt() ActionInterruptResult {
	return ActionInterruptResult{}
}

// Notification kinds sent by the pipeline. The contents of each is the action.
type (
	VerifyActionNotification struct {
		Performer ecs.Entity
	}
	BeforeActionNotification struct {
		Performer ecs.Entity
	}
	AfterActionNotification struct {
		Performer  ecs.Entity
		Complete   bool
		Successful bool
	}
	ActionEndNotification struct {
		Performer  ecs.Entity
		Successful bool
	}
	// TickNotification is sent once per counted tick with notify.None contents.
	TickNotification struct {
		Tick uint64
	}
)
