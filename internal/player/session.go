// Package player connects a client's text stream to the engine.
package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pixil98/go-mudengine/internal"
	"github.com/pixil98/go-mudengine/internal/display"
	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/engine"
	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-mudengine/internal/messaging"
)

const (
	minNameLength = 2
	maxNameLength = 16
	maxNameTries  = 5
)

// Game is the part of the engine a session drives.
type Game interface {
	AddPlayer(name string, sender game.Sender) (ecs.Entity, error)
	Submit(entity ecs.Entity, line string)
	Disconnect(entity ecs.Entity)
}

// Bus carries a session's outbound messages.
type Bus interface {
	messaging.Publisher
	messaging.Subscriber
}

type SessionManager struct {
	game Game
	bus  Bus

	mu       sync.Mutex
	sessions map[string]ecs.Entity
}

func NewSessionManager(g Game, bus Bus) *SessionManager {
	return &SessionManager{
		game:     g,
		bus:      bus,
		sessions: map[string]ecs.Entity{},
	}
}

// Count returns the number of sessions currently in the game.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// RunSession logs a client in and forwards its input until the connection
// closes, the client quits, or ctx is cancelled.
func (m *SessionManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	out := &syncWriter{w: conn}
	br := bufio.NewReader(conn)

	if _, err := io.WriteString(out, "Welcome!\n"); err != nil {
		return err
	}

	id, entity, unsub, err := m.join(br, out)
	if err != nil {
		return err
	}
	defer unsub()

	m.mu.Lock()
	m.sessions[id] = entity
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		m.game.Disconnect(entity)
	}()

	slog.InfoContext(ctx, "session started", "session", id, "entity", entity)

	done := make(chan struct{})
	defer close(done)
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		defer close(inputChan)
		scanner := bufio.NewScanner(br)
		for scanner.Scan() {
			select {
			case inputChan <- scanner.Text():
			case <-done:
				return
			}
		}
		inputErrChan <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-inputChan:
			if !ok {
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.EqualFold(line, "quit") {
				_, err := io.WriteString(out, "Goodbye!\n")
				return err
			}
			m.game.Submit(entity, line)
		}
	}
}

// join asks for a name until the engine accepts one. Messages for the new
// player are rendered to out from the moment it joins.
func (m *SessionManager) join(br *bufio.Reader, out io.Writer) (string, ecs.Entity, func(), error) {
	for {
		name, err := internal.Prompt(br, out, "By what name do you wish to be known? ",
			internal.WithValidator(validName),
			internal.WithMaxTries(maxNameTries),
		)
		if err != nil {
			return "", 0, nil, fmt.Errorf("reading name: %w", err)
		}
		name = game.Capitalize(strings.ToLower(name))

		ok, err := internal.PromptYN(br, out, fmt.Sprintf("Did I get that right, %s (Y/N)? ", name))
		if err != nil {
			return "", 0, nil, fmt.Errorf("confirming name: %w", err)
		}
		if !ok {
			continue
		}

		id := uuid.NewString()
		unsub, err := messaging.SubscribeSession(m.bus, id, func(tm game.TimedMessage) {
			if _, err := io.WriteString(out, display.Render(tm.Message)+"\n"); err != nil {
				slog.Warn("writing to session", "session", id, "error", err)
			}
		})
		if err != nil {
			return "", 0, nil, fmt.Errorf("subscribing session: %w", err)
		}

		entity, err := m.game.AddPlayer(name, messaging.NewNatsSender(m.bus, id))
		if errors.Is(err, engine.ErrAlreadyPlaying) {
			unsub()
			if _, err := io.WriteString(out, "That name is already in use.\n"); err != nil {
				return "", 0, nil, err
			}
			continue
		}
		if err != nil {
			unsub()
			return "", 0, nil, fmt.Errorf("joining game: %w", err)
		}
		return id, entity, unsub, nil
	}
}

func validName(s string) (bool, string) {
	n := utf8.RuneCountInString(s)
	if n < minNameLength || n > maxNameLength {
		return false, fmt.Sprintf("Names must be %d to %d letters long.\n", minNameLength, maxNameLength)
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false, "Names may only contain letters.\n"
		}
	}
	return true, ""
}

// syncWriter serializes writes from the read loop and message delivery.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
