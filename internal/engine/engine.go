// Package engine runs the simulation on behalf of connected sessions.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pixil98/go-mudengine/internal/actions"
	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
)

// ErrAlreadyPlaying is returned when a name is taken by a connected player.
var ErrAlreadyPlaying = errors.New("already playing")

// input is one line of text waiting to be parsed.
type input struct {
	entity ecs.Entity
	line   string
	at     time.Time
}

// Engine owns the world. Sessions hand it input from any goroutine; the world
// itself is only touched while mu is held.
type Engine struct {
	mu sync.Mutex
	w  *ecs.World

	inMu    sync.Mutex
	inbound []input

	opts    game.GameOptions
	decay   *game.VitalDecay
	seed    *uint64
	loaders []func(*ecs.World) error
	now     func() time.Time
}

// NewEngine builds a world with the standard rules and runs every loader.
func NewEngine(opts ...EngineOpt) (*Engine, error) {
	e := &Engine{
		w:   ecs.NewWorld(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	game.Setup(e.w, e.opts)
	if e.seed != nil {
		ecs.InsertResource(e.w, game.NewRand(*e.seed))
	}
	if e.decay != nil {
		ecs.InsertResource(e.w, *e.decay)
	}
	actions.Register(e.w)

	for _, load := range e.loaders {
		if err := load(e.w); err != nil {
			return nil, fmt.Errorf("loading world: %w", err)
		}
	}
	if err := game.CheckInvariants(e.w); err != nil {
		return nil, fmt.Errorf("checking loaded world: %w", err)
	}
	return e, nil
}

// AddPlayer spawns a player named name in the spawn room and shows them
// where they are.
func (e *Engine) AddPlayer(name string, sender game.Sender) (ecs.Entity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for p := range ecs.Query[game.Player](e.w) {
		if ecs.Has[game.ClientGone](e.w, p) {
			continue
		}
		if strings.EqualFold(game.Name(e.w, p), name) {
			return 0, fmt.Errorf("player %q is %w", name, ErrAlreadyPlaying)
		}
	}

	p, err := game.SpawnPlayer(e.w, name, sender, e.now())
	if err != nil {
		return 0, fmt.Errorf("spawning player: %w", err)
	}
	game.QueueAction(e.w, p, actions.NewGlance())
	slog.Info("player joined", "name", name, "entity", p)
	return p, nil
}

// Submit queues a line of input from entity. It is parsed on the next Tick.
func (e *Engine) Submit(entity ecs.Entity, line string) {
	e.inMu.Lock()
	defer e.inMu.Unlock()
	e.inbound = append(e.inbound, input{entity: entity, line: line, at: e.now()})
}

// Disconnect marks entity's client as gone. Its actions are cancelled and it
// leaves the world once its queue is empty.
func (e *Engine) Disconnect(entity ecs.Entity) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.w.Alive(entity) {
		return
	}
	ecs.Attach(e.w, entity, game.ClientGone{})
	game.CancelActions(e.w, entity)
	slog.Info("player left", "name", game.Name(e.w, entity), "entity", entity)
}

// Tick parses pending input in arrival order and runs the scheduler once.
func (e *Engine) Tick(ctx context.Context) error {
	lines := e.takeInbound()

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, in := range lines {
		e.handleInput(in)
	}

	start := time.Now()
	r := game.Process(e.w, e.now())
	recordProcess(time.Since(start))

	for _, s := range r.Steps {
		ActionsTotal.WithLabelValues(s.Action, s.Outcome.String()).Inc()
	}
	if r.Ticked {
		TicksTotal.Inc()
		slog.DebugContext(ctx, "tick", "tick", e.w.TickCount(), "time", game.Now(e.w).String())
	}

	if err := game.CheckInvariants(e.w); err != nil {
		slog.ErrorContext(ctx, "world invariant violated", "tick", e.w.TickCount(), "error", err)
	}
	return nil
}

// View runs fn with exclusive access to the world.
func (e *Engine) View(fn func(*ecs.World)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.w)
}

func (e *Engine) takeInbound() []input {
	e.inMu.Lock()
	defer e.inMu.Unlock()
	lines := e.inbound
	e.inbound = nil
	return lines
}

func (e *Engine) handleInput(in input) {
	if !e.w.Alive(in.entity) || ecs.Has[game.ClientGone](e.w, in.entity) {
		return
	}
	game.MarkInput(e.w, in.entity, in.at)

	action, err := game.Parse(e.w, in.entity, in.line)
	if err != nil {
		var pe *game.ParseError
		if errors.As(err, &pe) {
			ParseErrorsTotal.WithLabelValues(pe.Kind.String()).Inc()
		}
		game.SendMessage(e.w, in.entity, game.ErrorMessage{Text: err.Error()})
		return
	}
	game.QueueAction(e.w, in.entity, action)
}
