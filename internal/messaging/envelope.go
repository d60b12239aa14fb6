package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-mudengine/internal/game"
)

// Envelope is the wire form of a timed game message.
type Envelope struct {
	Kind    string          `json:"kind"`
	Time    game.Time       `json:"time"`
	Payload json.RawMessage `json:"payload"`
}

var decoders = map[string]func([]byte) (game.GameMessage, error){}

func register[M game.GameMessage]() {
	var zero M
	decoders[zero.Kind()] = func(b []byte) (game.GameMessage, error) {
		var m M
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, err
		}
		return m, nil
	}
}

func init() {
	register[game.Message]()
	register[game.ErrorMessage]()
	register[game.LocationDescription]()
	register[game.EntityDescription]()
	register[game.HelpDescription]()
	register[game.MapDescription]()
	register[game.StatsDescription]()
	register[game.VitalsDescription]()
	register[game.ValueChangeDescription]()
	register[game.VitalChangeDescription]()
	register[game.WornItemsDescription]()
	register[game.InventoryDescription]()
	register[game.PlayersDescription]()
}

// Encode wraps m in an envelope.
func Encode(m game.TimedMessage) ([]byte, error) {
	payload, err := json.Marshal(m.Message)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", m.Message.Kind(), err)
	}
	return json.Marshal(Envelope{Kind: m.Message.Kind(), Time: m.Time, Payload: payload})
}

// Decode unwraps an envelope produced by Encode.
func Decode(data []byte) (game.TimedMessage, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return game.TimedMessage{}, fmt.Errorf("decoding envelope: %w", err)
	}
	decode, ok := decoders[env.Kind]
	if !ok {
		return game.TimedMessage{}, fmt.Errorf("unknown message kind %q", env.Kind)
	}
	m, err := decode(env.Payload)
	if err != nil {
		return game.TimedMessage{}, fmt.Errorf("decoding %s payload: %w", env.Kind, err)
	}
	return game.TimedMessage{Message: m, Time: env.Time}, nil
}
