package messaging

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-mudengine/internal/game"
)

// Subject is the NATS subject a session receives its messages on.
func Subject(sessionId string) string {
	return fmt.Sprintf("player-%s", sessionId)
}

// NatsSender publishes one player's messages to their session subject.
type NatsSender struct {
	pub     Publisher
	subject string
}

func NewNatsSender(pub Publisher, sessionId string) *NatsSender {
	return &NatsSender{pub: pub, subject: Subject(sessionId)}
}

func (s *NatsSender) Send(m game.TimedMessage) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	if err := s.pub.Publish(s.subject, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", s.subject, err)
	}
	return nil
}

// Subscriber registers raw handlers on subjects.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// SubscribeSession calls handler with each message published for sessionId.
// Payloads that cannot be decoded are logged and skipped.
func SubscribeSession(sub Subscriber, sessionId string, handler func(game.TimedMessage)) (func(), error) {
	return sub.Subscribe(Subject(sessionId), func(data []byte) {
		m, err := Decode(data)
		if err != nil {
			slog.Warn("dropping undecodable message", "session", sessionId, "error", err)
			return
		}
		handler(m)
	})
}
