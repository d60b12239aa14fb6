package messaging

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-testutil"
)

type recordingPublisher struct {
	subject string
	data    []byte
	err     error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.subject = subject
	p.data = data
	return p.err
}

func TestNatsSender_Send(t *testing.T) {
	pub := &recordingPublisher{}
	s := NewNatsSender(pub, "abc")
	at := game.NewTime().Tick()

	err := s.Send(game.TimedMessage{
		Message: game.VitalChangeDescription{
			Message:  "That hit the spot!",
			Vital:    game.Satiety,
			OldValue: game.NewConstrainedValue(50, 0, 100),
			NewValue: game.NewConstrainedValue(53, 0, 100),
		},
		Time: at,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "subject", pub.subject, "player-abc")

	got, err := Decode(pub.data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "time", got.Time, at)
	vc, ok := got.Message.(game.VitalChangeDescription)
	testutil.AssertEqual(t, "kind", ok, true)
	testutil.AssertEqual(t, "message", vc.Message, "That hit the spot!")
	testutil.AssertEqual(t, "new value", vc.NewValue.Get(), 53.0)
}

func TestNatsSender_PublishError(t *testing.T) {
	s := NewNatsSender(&recordingPublisher{err: errors.New("closed")}, "abc")
	err := s.Send(game.TimedMessage{Message: game.Message{Text: "hi"}})
	testutil.AssertErrorContains(t, err, "publishing to player-abc")
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]struct {
		data   string
		expErr string
	}{
		"not json": {
			data:   "nope",
			expErr: "decoding envelope",
		},
		"unknown kind": {
			data:   `{"kind":"poem","payload":{}}`,
			expErr: `unknown message kind "poem"`,
		},
		"bad payload": {
			data:   `{"kind":"message","payload":[1]}`,
			expErr: "decoding message payload",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

// startServer runs a server on a free port until the test ends.
func startServer(t *testing.T, opts ...NatsServerOpt) *NatsServer {
	t.Helper()
	srv, err := NewNatsServer(append([]NatsServerOpt{WithPort(-1)}, opts...)...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	select {
	case <-srv.Ready():
	case err := <-done:
		t.Fatalf("server stopped: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("server not ready")
	}
	return srv
}

func TestNatsServer_DeliversToSession(t *testing.T) {
	srv := startServer(t)

	got := make(chan game.TimedMessage, 1)
	unsub, err := SubscribeSession(srv, "s1", func(m game.TimedMessage) { got <- m })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unsub()

	if err := NewNatsSender(srv, "s1").Send(game.TimedMessage{Message: game.Message{Text: "hello"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := srv.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case m := <-got:
		testutil.AssertEqual(t, "text", m.Message.(game.Message).Text, "hello")
	case <-time.After(5 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestNatsServer_MaxPayload(t *testing.T) {
	srv := startServer(t, WithMaxPayload(256))

	err := NewNatsSender(srv, "s1").Send(game.TimedMessage{Message: game.Message{Text: strings.Repeat("a", 512)}})
	testutil.AssertErrorContains(t, err, "maximum payload exceeded")

	err = NewNatsSender(srv, "s1").Send(game.TimedMessage{Message: game.Message{Text: "short"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNatsServer_NotStarted(t *testing.T) {
	srv, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertErrorContains(t, srv.Publish("player-x", []byte("{}")), "nats server not started")
	_, err = srv.Subscribe("player-x", func([]byte) {})
	testutil.AssertErrorContains(t, err, "nats server not started")
}
