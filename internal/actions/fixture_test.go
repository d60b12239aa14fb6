package actions

import (
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	t *testing.T
	w *ecs.World
	a ecs.Entity
	b ecs.Entity
}

// newFixture builds two rooms, A and B, with B to the east of A.
func newFixture(t *testing.T, opts game.GameOptions) *fixture {
	t.Helper()
	w := ecs.NewWorld()
	game.Setup(w, opts)
	ecs.InsertResource(w, game.NewRand(1))
	Register(w)

	a := game.NewRoom(w, "Room A", "The first room.")
	ecs.Attach(w, a, game.SpawnRoom{})
	b := game.NewRoom(w, "Room B", "The second room.")
	game.Connect(w, a, b, game.East, game.ConnectOptions{})
	return &fixture{t: t, w: w, a: a, b: b}
}

func (f *fixture) player(name string) (ecs.Entity, *game.Outbox) {
	f.t.Helper()
	out := game.NewOutbox()
	p, err := game.SpawnPlayer(f.w, name, out, epoch)
	if err != nil {
		f.t.Fatalf("spawning player: %v", err)
	}
	return p, out
}

func (f *fixture) item(name string, in ecs.Entity) ecs.Entity {
	e := f.w.Spawn()
	ecs.Attach(f.w, e, game.Description{Name: name, Article: "a", Pronouns: game.PronounsIt})
	ecs.Attach(f.w, e, game.Item{})
	game.MoveEntity(f.w, e, in)
	return e
}

// hold puts item straight into p's hands.
func (f *fixture) hold(p, item ecs.Entity) {
	held := ecs.MustGet[game.HeldItems](f.w, p)
	held.Items = append(held.Items, item)
}

// vessel spawns a fluid container holding contents.
func (f *fixture) vessel(name string, in ecs.Entity, capacity float64, contents game.Fluid) ecs.Entity {
	e := f.item(name, in)
	ecs.Attach(f.w, e, game.FluidContainer{Contents: contents, Capacity: capacity})
	return e
}

func (f *fixture) npc(name string, in ecs.Entity) ecs.Entity {
	e := f.w.Spawn()
	ecs.Attach(f.w, e, game.Description{Name: name, Article: "a", Pronouns: game.PronounsIt})
	ecs.Attach(f.w, e, game.Living{})
	ecs.Attach(f.w, e, game.NewVitals())
	ecs.Attach(f.w, e, game.Container{})
	game.MoveEntity(f.w, e, in)
	return e
}

// submit parses line for p and queues the result the way the engine does.
func (f *fixture) submit(p ecs.Entity, line string) {
	f.t.Helper()
	game.MarkInput(f.w, p, epoch)
	action, err := game.Parse(f.w, p, line)
	if err != nil {
		game.SendMessage(f.w, p, game.ErrorMessage{Text: err.Error()})
		return
	}
	game.QueueAction(f.w, p, action)
}

func (f *fixture) process() game.Report {
	f.t.Helper()
	r := game.Process(f.w, epoch)
	if err := game.CheckInvariants(f.w); err != nil {
		f.t.Fatalf("invariants violated: %v", err)
	}
	return r
}

func messagesOf[M game.GameMessage](out *game.Outbox) []M {
	var found []M
	for _, m := range out.Drain() {
		if msg, ok := m.Message.(M); ok {
			found = append(found, msg)
		}
	}
	return found
}

func texts(out *game.Outbox) []string {
	var found []string
	for _, m := range out.Drain() {
		switch msg := m.Message.(type) {
		case game.Message:
			found = append(found, msg.Text)
		case game.ErrorMessage:
			found = append(found, msg.Text)
		case game.VitalChangeDescription:
			found = append(found, msg.Message)
		}
	}
	return found
}

func joined(out *game.Outbox) string {
	return strings.Join(texts(out), "\n")
}

func location(w *ecs.World, e ecs.Entity) ecs.Entity {
	loc, _ := game.LocationOf(w, e)
	return loc
}
