package game

import (
	"log/slog"
	"sync"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

// GameMessage is a structured message for a perceiving entity. Front ends
// decide how each kind is rendered.
type GameMessage interface {
	Kind() string
}

// TimedMessage is a message stamped with the in-game time it was produced at.
type TimedMessage struct {
	Message GameMessage
	Time    Time
}

// Sender delivers messages to the outside world. Implementations must be safe
// to call from the simulation goroutine while readers consume on another.
type Sender interface {
	Send(TimedMessage) error
}

// MessageChannel marks an entity observed by an external agent.
type MessageChannel struct {
	Sender Sender
}

// SendMessage delivers msg to e if it has a message channel.
func SendMessage(w *ecs.World, e ecs.Entity, msg GameMessage) {
	mc, ok := ecs.Get[MessageChannel](w, e)
	if !ok || mc.Sender == nil {
		return
	}
	if err := mc.Sender.Send(TimedMessage{Message: msg, Time: Now(w)}); err != nil {
		slog.Warn("sending message", "entity", e, "error", err)
	}
}

// CanReceiveMessages reports whether e has a message channel.
func CanReceiveMessages(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has[MessageChannel](w, e)
}

// Outbox is an in-memory Sender that buffers messages until drained.
type Outbox struct {
	mu       sync.Mutex
	messages []TimedMessage
	notify   chan struct{}
}

func NewOutbox() *Outbox {
	return &Outbox{notify: make(chan struct{}, 1)}
}

func (o *Outbox) Send(m TimedMessage) error {
	o.mu.Lock()
	o.messages = append(o.messages, m)
	o.mu.Unlock()
	select {
	case o.notify <- struct{}{}:
	default:
	}
	return nil
}

// Drain returns and clears every buffered message.
func (o *Outbox) Drain() []TimedMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.messages
	o.messages = nil
	return out
}

// Ready is signalled after sends; it may coalesce several sends.
func (o *Outbox) Ready() <-chan struct{} {
	return o.notify
}

// Message is plain narrative text.
type Message struct {
	Text string `json:"text"`
}

func (Message) Kind() string { return "message" }

// ErrorMessage tells the performer why something could not be done.
type ErrorMessage struct {
	Text string `json:"text"`
}

func (ErrorMessage) Kind() string { return "error" }

type ExitDescription struct {
	Direction   Direction `json:"direction"`
	Destination string    `json:"destination"`
	Closed      bool      `json:"closed,omitempty"`
}

// LocationDescription describes a room and what can be seen in it.
type LocationDescription struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Living      []string          `json:"living,omitempty"`
	Objects     []string          `json:"objects,omitempty"`
	Exits       []ExitDescription `json:"exits,omitempty"`
}

func (LocationDescription) Kind() string { return "location" }

// EntityDescription describes a single entity looked at closely.
type EntityDescription struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Attributes  []string `json:"attributes,omitempty"`
}

func (EntityDescription) Kind() string { return "entity" }

type HelpDescription struct {
	Formats []string `json:"formats"`
}

func (HelpDescription) Kind() string { return "help" }

type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type StatsDescription struct {
	Attributes []NamedValue `json:"attributes"`
	Skills     []NamedValue `json:"skills"`
}

func (StatsDescription) Kind() string { return "stats" }

type VitalsDescription struct {
	Health    ConstrainedValue `json:"health"`
	Satiety   ConstrainedValue `json:"satiety"`
	Hydration ConstrainedValue `json:"hydration"`
	Energy    ConstrainedValue `json:"energy"`
}

func (VitalsDescription) Kind() string { return "vitals" }

// ValueChangeDescription reports a change to one of the recipient's own values.
type ValueChangeDescription struct {
	Message   string           `json:"message"`
	ValueType VitalType        `json:"value_type"`
	OldValue  ConstrainedValue `json:"old_value"`
	NewValue  ConstrainedValue `json:"new_value"`
}

func (ValueChangeDescription) Kind() string { return "value_change" }

// Visualization controls how a front end draws a vital change.
type Visualization int

const (
	// VisualizationFull is a full bar with the numeric value.
	VisualizationFull Visualization = iota
	// VisualizationAbbreviated is a short bar with no number.
	VisualizationAbbreviated
)

// VitalChangeDescription reports a vital change of any entity to a viewer.
type VitalChangeDescription struct {
	Message       string           `json:"message"`
	Vital         VitalType        `json:"vital"`
	OldValue      ConstrainedValue `json:"old_value"`
	NewValue      ConstrainedValue `json:"new_value"`
	Visualization Visualization    `json:"visualization"`
}

func (VitalChangeDescription) Kind() string { return "vital_change" }

type WornItem struct {
	Name      string     `json:"name"`
	BodyParts []BodyPart `json:"body_parts"`
}

type WornItemsDescription struct {
	Items []WornItem `json:"items"`
}

func (WornItemsDescription) Kind() string { return "worn" }

type InventoryDescription struct {
	Items       []string `json:"items"`
	TotalWeight float64  `json:"total_weight"`
	MaxWeight   float64  `json:"max_weight,omitempty"`
}

func (InventoryDescription) Kind() string { return "inventory" }

type PlayerDescription struct {
	Name            string `json:"name"`
	HasQueuedAction bool   `json:"has_queued_action"`
	IsAfk           bool   `json:"is_afk"`
	IsSelf          bool   `json:"is_self"`
}

type PlayersDescription struct {
	Players []PlayerDescription `json:"players"`
}

func (PlayersDescription) Kind() string { return "players" }
