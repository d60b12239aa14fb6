package actions

import (
	"testing"
	"time"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestItems_Commands(t *testing.T) {
	tests := map[string]struct {
		setup       func(f *fixture, p ecs.Entity)
		input       string
		expMessages string
		expTicked   bool
	}{
		"get from floor": {
			setup:       func(f *fixture, _ ecs.Entity) { f.item("rock", f.a) },
			input:       "get rock",
			expMessages: "You pick up the rock.",
			expTicked:   true,
		},
		"get something missing": {
			setup:       func(*fixture, ecs.Entity) {},
			input:       "take rock",
			expMessages: "There is no rock here.",
		},
		"get something too heavy": {
			setup: func(f *fixture, _ ecs.Entity) {
				anvil := f.item("anvil", f.a)
				ecs.Attach(f.w, anvil, game.Weight(100))
			},
			input:       "get anvil",
			expMessages: "The anvil is too heavy for you.",
		},
		"get something not an item": {
			setup: func(f *fixture, _ ecs.Entity) {
				f.npc("goblin", f.a)
			},
			input:       "get goblin",
			expMessages: "You can't pick up the goblin.",
		},
		"get ambiguous": {
			setup: func(f *fixture, _ ecs.Entity) {
				f.item("coin", f.a)
				f.item("coin", f.a)
			},
			input:       "get coin",
			expMessages: "Which coin do you mean: the coin (coin 1) or the coin (coin 2)?",
		},
		"get by ordinal": {
			setup: func(f *fixture, _ ecs.Entity) {
				f.item("coin", f.a)
				f.item("coin", f.a)
			},
			input:       "get 2.coin",
			expMessages: "You pick up the coin.",
			expTicked:   true,
		},
		"drop carried": {
			setup:       func(f *fixture, p ecs.Entity) { f.item("rock", p) },
			input:       "drop rock",
			expMessages: "You drop the rock.",
			expTicked:   true,
		},
		"drop not carried": {
			setup:       func(f *fixture, _ ecs.Entity) { f.item("rock", f.a) },
			input:       "drop rock",
			expMessages: "There is no rock here.",
		},
		"put into box": {
			setup: func(f *fixture, p ecs.Entity) {
				f.item("rock", p)
				box := f.item("box", f.a)
				ecs.Attach(f.w, box, game.Container{MaxVolume: 2})
			},
			input:       "put rock in box",
			expMessages: "You put the rock in the box.",
			expTicked:   true,
		},
		"put into full box": {
			setup: func(f *fixture, p ecs.Entity) {
				rock := f.item("rock", p)
				ecs.Attach(f.w, rock, game.Volume(3))
				box := f.item("box", f.a)
				ecs.Attach(f.w, box, game.Container{MaxVolume: 2})
			},
			input:       "put rock in box",
			expMessages: "The box is too full.",
		},
		"put into closed box": {
			setup: func(f *fixture, p ecs.Entity) {
				f.item("rock", p)
				box := f.item("box", f.a)
				ecs.Attach(f.w, box, game.Container{})
				ecs.Attach(f.w, box, game.OpenState{})
			},
			input:       "put rock in box",
			expMessages: "The box is closed.",
		},
		"put without container": {
			setup:       func(f *fixture, p ecs.Entity) { f.item("rock", p) },
			input:       "put rock",
			expMessages: "Put the rock in what?",
		},
		"eat something inedible": {
			setup:       func(f *fixture, _ ecs.Entity) { f.item("rock", f.a) },
			input:       "eat rock",
			expMessages: "You can't eat the rock.",
		},
		"drink from something dry": {
			setup:       func(f *fixture, _ ecs.Entity) { f.item("rock", f.a) },
			input:       "drink rock",
			expMessages: "You can't drink from the rock.",
		},
		"open something without a door": {
			setup:       func(f *fixture, _ ecs.Entity) { f.item("rock", f.a) },
			input:       "open rock",
			expMessages: "You can't open the rock.",
		},
		"unknown command": {
			setup:       func(*fixture, ecs.Entity) {},
			input:       "dance wildly",
			expMessages: "I don't know how to do that.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, game.GameOptions{})
			p, out := f.player("Alice")
			tt.setup(f, p)

			f.submit(p, tt.input)
			r := f.process()

			testutil.AssertEqual(t, "messages", joined(out), tt.expMessages)
			testutil.AssertEqual(t, "ticked", r.Ticked, tt.expTicked)
		})
	}
}

func TestGet_FromContainer(t *testing.T) {
	f := newFixture(t, game.GameOptions{})
	p, out := f.player("Alice")
	box := f.item("box", f.a)
	ecs.Attach(f.w, box, game.Container{})
	coin := f.item("coin", box)

	f.submit(p, "get coin from box")
	f.process()

	testutil.AssertEqual(t, "messages", joined(out), "You take the coin from the box.")
	testutil.AssertEqual(t, "carried", location(f.w, coin), p)
}

// idleBob spawns a second player who is AFK, so Alice's actions do not wait
// on him.
func idleBob(f *fixture) ecs.Entity {
	p, _ := f.player("Bob")
	ecs.MustGet[game.Player](f.w, p).LastInput = epoch.Add(-time.Hour)
	return p
}

func TestGet_FromCreature(t *testing.T) {
	tests := map[string]struct {
		holder func(f *fixture) ecs.Entity
		input  string
		worn   bool
		exp    string
	}{
		"worn by another player": {
			holder: idleBob,
			input:  "get hat from bob",
			worn:   true,
			exp:    "You can't take things from Bob.",
		},
		"carried by another player": {
			holder: idleBob,
			input:  "get hat from bob",
			exp:    "You can't take things from Bob.",
		},
		"carried by an npc": {
			holder: func(f *fixture) ecs.Entity { return f.npc("goblin", f.a) },
			input:  "take hat from goblin",
			exp:    "You can't take things from the goblin.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, game.GameOptions{AfkTimeout: time.Minute})
			p, out := f.player("Alice")
			holder := tt.holder(f)
			hat := f.item("hat", holder)
			ecs.Attach(f.w, hat, game.Wearable{Thickness: 1, BodyParts: []game.BodyPart{game.Head}})
			if tt.worn {
				ecs.MustGet[game.WornItems](f.w, holder).Items = []ecs.Entity{hat}
			}

			f.submit(p, tt.input)
			r := f.process()

			testutil.AssertEqual(t, "messages", joined(out), tt.exp)
			testutil.AssertEqual(t, "ticked", r.Ticked, false)
			testutil.AssertEqual(t, "still held", location(f.w, hat), holder)
			if tt.worn {
				worn, _ := ecs.MustGet[game.WornItems](f.w, holder).WearerOf(f.w, game.Head)
				testutil.AssertEqual(t, "still worn", worn, hat)
			}
		})
	}
}

func TestWear(t *testing.T) {
	f := newFixture(t, game.GameOptions{})
	p, out := f.player("Alice")
	hat := f.item("hat", p)
	ecs.Attach(f.w, hat, game.Wearable{Thickness: 1, BodyParts: []game.BodyPart{game.Head}})
	helmet := f.item("helmet", p)
	ecs.Attach(f.w, helmet, game.Wearable{Thickness: 3, BodyParts: []game.BodyPart{game.Head}})

	f.submit(p, "wear hat")
	f.process()
	testutil.AssertEqual(t, "wear hat", joined(out), "You put on the hat.")

	f.submit(p, "wear helmet")
	f.process()
	testutil.AssertEqual(t, "wear helmet", joined(out), "You're already wearing the hat on your head.")

	f.submit(p, "drop hat")
	f.process()
	testutil.AssertEqual(t, "drop worn", joined(out), "You need to take off the hat first.")

	f.submit(p, "take off hat")
	f.process()
	testutil.AssertEqual(t, "remove hat", joined(out), "You take off the hat.")
	testutil.AssertEqual(t, "still carried", location(f.w, hat), p)
	testutil.AssertEqual(t, "worn count", len(ecs.MustGet[game.WornItems](f.w, p).Items), 0)
}

func TestInfoCommands_DoNotTick(t *testing.T) {
	tests := map[string]struct {
		input   string
		expKind string
	}{
		"help":      {input: "help", expKind: "help"},
		"inventory": {input: "i", expKind: "inventory"},
		"worn":      {input: "worn", expKind: "worn"},
		"vitals":    {input: "vitals", expKind: "vitals"},
		"stats":     {input: "stats", expKind: "stats"},
		"players":   {input: "who", expKind: "players"},
		"map":       {input: "map", expKind: "map"},
		"say":       {input: "say hello", expKind: "message"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, game.GameOptions{})
			p, out := f.player("Alice")

			f.submit(p, tt.input)
			r := f.process()

			msgs := out.Drain()
			testutil.AssertEqual(t, "ticked", r.Ticked, false)
			testutil.AssertEqual(t, "messages", len(msgs), 1)
			testutil.AssertEqual(t, "kind", msgs[0].Message.Kind(), tt.expKind)
			testutil.AssertEqual(t, "queue empty", game.HasQueuedAction(f.w, p), false)
		})
	}
}

func TestMap_CentersOnViewer(t *testing.T) {
	f := newFixture(t, game.GameOptions{})
	p, out := f.player("Alice")
	ecs.Attach(f.w, f.a, game.Coordinates{})
	ecs.Attach(f.w, f.b, game.Coordinates{X: 1})
	gm := ecs.MustResource[game.GameMap](f.w)
	gm.Rooms[game.Coordinates{}] = f.a
	gm.Rooms[game.Coordinates{X: 1}] = f.b

	f.submit(p, "map")
	f.process()

	maps := messagesOf[game.MapDescription](out)
	testutil.AssertEqual(t, "maps", len(maps), 1)
	testutil.AssertEqual(t, "size", maps[0].Size, MapSize)
	testutil.AssertEqual(t, "center", maps[0].Tiles[2][2], game.PlayerMapIcon)
	testutil.AssertEqual(t, "east", maps[0].Tiles[2][3], game.DefaultRoomIcon)
	testutil.AssertEqual(t, "corner", maps[0].Tiles[0][0], game.BlankMapIcon)
}
