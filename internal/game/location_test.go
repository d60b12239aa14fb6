package game

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-testutil"
)

func TestConnect(t *testing.T) {
	tests := map[string]struct {
		opts       ConnectOptions
		expReverse bool
		expClosed  bool
	}{
		"two way":     {expReverse: true},
		"one way":     {opts: ConnectOptions{OneWay: true}},
		"closed door": {opts: ConnectOptions{Door: true}, expReverse: true, expClosed: true},
		"open door":   {opts: ConnectOptions{Door: true, Open: true}, expReverse: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := ecs.NewWorld()
			Setup(w, GameOptions{})
			a := NewRoom(w, "A", "")
			b := NewRoom(w, "B", "")

			Connect(w, a, b, SouthEast, tt.opts)

			_, out, ok := ConnectionIn(w, a, SouthEast)
			testutil.AssertEqual(t, "forward", ok, true)
			testutil.AssertEqual(t, "destination", out.Destination, b)

			_, back, ok := ConnectionIn(w, b, NorthWest)
			testutil.AssertEqual(t, "reverse", ok, tt.expReverse)
			if ok {
				testutil.AssertEqual(t, "back destination", back.Destination, a)
			}

			desc := DescribeLocation(w, 0, a)
			testutil.AssertEqual(t, "exits", len(desc.Exits), 1)
			testutil.AssertEqual(t, "closed", desc.Exits[0].Closed, tt.expClosed)

			if err := CheckInvariants(w); err != nil {
				t.Errorf("unexpected invariant violation: %v", err)
			}
		})
	}
}

func TestSetOpen_UpdatesBothSides(t *testing.T) {
	w := ecs.NewWorld()
	Setup(w, GameOptions{})
	a := NewRoom(w, "A", "")
	b := NewRoom(w, "B", "")
	door := Connect(w, a, b, North, ConnectOptions{Door: true})

	SetOpen(w, door, true)

	other := ecs.MustGet[Connection](w, door).OtherSide
	testutil.AssertEqual(t, "this side", ecs.MustGet[OpenState](w, door).Open, true)
	testutil.AssertEqual(t, "other side", ecs.MustGet[OpenState](w, other).Open, true)
}

func TestDescribeLocation_ExitOrder(t *testing.T) {
	w := ecs.NewWorld()
	Setup(w, GameOptions{})
	hub := NewRoom(w, "Hub", "The middle.")
	for _, d := range []Direction{Down, West, North, East} {
		Connect(w, hub, NewRoom(w, d.String()+" room", ""), d, ConnectOptions{})
	}
	spawnThing(w, "rock", hub)
	rat := spawnThing(w, "rat", hub)
	ecs.Attach(w, rat, Living{})

	desc := DescribeLocation(w, 0, hub)

	var order string
	for _, e := range desc.Exits {
		order += e.Direction.Short()
	}
	testutil.AssertEqual(t, "order", order, "newd")
	testutil.AssertEqual(t, "living", len(desc.Living), 1)
	testutil.AssertEqual(t, "living name", desc.Living[0], "a rat")
	testutil.AssertEqual(t, "objects", len(desc.Objects), 1)
	testutil.AssertEqual(t, "object name", desc.Objects[0], "a rock")
}

func TestCheckInvariants_DetectsBrokenContainer(t *testing.T) {
	w := ecs.NewWorld()
	Setup(w, GameOptions{})
	room := NewRoom(w, "A", "")
	rock := spawnThing(w, "rock", room)

	ecs.MustGet[Container](w, room).remove(rock)

	testutil.AssertErrorContains(t, CheckInvariants(w), "not listed by it")
}

func TestCheckInvariants_HeldAndFluid(t *testing.T) {
	tests := map[string]struct {
		breakIt func(w *ecs.World, p ecs.Entity)
		expErr  string
	}{
		"held item carried elsewhere": {
			breakIt: func(w *ecs.World, p ecs.Entity) {
				room, _ := LocationOf(w, p)
				torch := spawnThing(w, "torch", room)
				ecs.MustGet[HeldItems](w, p).Items = []ecs.Entity{torch}
			},
			expErr: "which it does not carry",
		},
		"too many hands": {
			breakIt: func(w *ecs.World, p ecs.Entity) {
				held := ecs.MustGet[HeldItems](w, p)
				for _, name := range []string{"pole", "torch"} {
					e := spawnThing(w, name, p)
					ecs.Attach(w, e, Item{Hands: 2})
					held.Items = append(held.Items, e)
				}
			},
			expErr: "holds more than its 2 hands can",
		},
		"fluid over capacity": {
			breakIt: func(w *ecs.World, p ecs.Entity) {
				cup := spawnThing(w, "cup", p)
				ecs.Attach(w, cup, FluidContainer{Contents: Fluid{Water: 1}, Capacity: 0.5})
			},
			expErr: "over its 0.50L capacity",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, p, _ := newTestWorld(t)
			if err := CheckInvariants(w); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.breakIt(w, p)
			testutil.AssertErrorContains(t, CheckInvariants(w), tt.expErr)
		})
	}
}

func TestHeldItems_ReleasedWhenMovedAway(t *testing.T) {
	w, p, _ := newTestWorld(t)
	room, _ := LocationOf(w, p)
	pole := spawnThing(w, "pole", p)
	ecs.Attach(w, pole, Item{Hands: 2})
	held := ecs.MustGet[HeldItems](w, p)
	held.Items = []ecs.Entity{pole}
	testutil.AssertEqual(t, "free while held", held.FreeHands(w), 0)

	MoveEntity(w, pole, room)

	held = ecs.MustGet[HeldItems](w, p)
	testutil.AssertEqual(t, "holds", held.Holds(pole), false)
	testutil.AssertEqual(t, "free after move", held.FreeHands(w), DefaultHands)
	if err := CheckInvariants(w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestMoveEntity_KeepsInvariants shuffles entities between containers at random
// and checks the world stays consistent after every move.
func TestMoveEntity_KeepsInvariants(t *testing.T) {
	w := ecs.NewWorld()
	Setup(w, GameOptions{})
	rng := rand.New(rand.NewPCG(7, 11))

	var containers []ecs.Entity
	for i := range 3 {
		r := NewRoom(w, "room", "")
		containers = append(containers, r)
		if i > 0 {
			Connect(w, containers[i-1], r, East, ConnectOptions{})
		}
	}
	var things []ecs.Entity
	for range 6 {
		e := spawnThing(w, "box", containers[0])
		ecs.Attach(w, e, Container{})
		things = append(things, e)
	}

	all := append(slices.Clone(containers), things...)
	for i := range 200 {
		e := things[rng.IntN(len(things))]
		dest := all[rng.IntN(len(all))]
		if dest == e || isInside(w, dest, e) {
			continue
		}
		MoveEntity(w, e, dest)
		if err := CheckInvariants(w); err != nil {
			t.Fatalf("move %d broke invariants: %v", i, err)
		}
	}

	DespawnEntity(w, things[0])
	w.ApplyDespawns()
	if err := CheckInvariants(w); err != nil {
		t.Fatalf("despawn broke invariants: %v", err)
	}
}

// isInside reports whether e is somewhere inside container.
func isInside(w *ecs.World, e, container ecs.Entity) bool {
	for range 64 {
		loc, ok := LocationOf(w, e)
		if !ok {
			return false
		}
		if loc == container {
			return true
		}
		e = loc
	}
	return false
}

func TestWeightOf_IncludesContents(t *testing.T) {
	w := ecs.NewWorld()
	Setup(w, GameOptions{})
	room := NewRoom(w, "A", "")
	bag := spawnThing(w, "bag", room)
	ecs.Attach(w, bag, Container{})
	ecs.Attach(w, bag, Weight(1))
	rock := spawnThing(w, "rock", bag)
	ecs.Attach(w, rock, Weight(2))
	flask := spawnThing(w, "flask", bag)
	ecs.Attach(w, flask, Volume(0.5))
	ecs.Attach(w, flask, Density(2))
	ecs.Attach(w, flask, FluidContainer{Contents: Fluid{Water: 1}, Capacity: 1})

	testutil.AssertEqual(t, "bag", WeightOf(w, bag), 5.0)
	testutil.AssertEqual(t, "room is not weighed", WeightOf(w, room), 0.0)
}

func TestPlaceRooms(t *testing.T) {
	w := ecs.NewWorld()
	Setup(w, GameOptions{})
	hall := NewRoom(w, "Hall", "")
	yard := NewRoom(w, "Yard", "")
	loft := NewRoom(w, "Loft", "")
	shed := NewRoom(w, "Shed", "")
	island := NewRoom(w, "Island", "")
	Connect(w, hall, yard, North, ConnectOptions{})
	Connect(w, hall, loft, Up, ConnectOptions{})
	Connect(w, yard, shed, SouthEast, ConnectOptions{Door: true})

	PlaceRooms(w, hall)

	tests := map[string]struct {
		room ecs.Entity
		exp  Coordinates
	}{
		"origin":    {room: hall, exp: Coordinates{}},
		"north":     {room: yard, exp: Coordinates{Y: -1}},
		"up":        {room: loft, exp: Coordinates{Z: 1}},
		"two steps": {room: shed, exp: Coordinates{X: 1}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := ecs.Get[Coordinates](w, tt.room)
			testutil.AssertEqual(t, "placed", ok, true)
			testutil.AssertEqual(t, "coordinates", *got, tt.exp)
			testutil.AssertEqual(t, "indexed", ecs.MustResource[GameMap](w).Rooms[tt.exp], tt.room)
		})
	}

	testutil.AssertEqual(t, "unreachable", ecs.Has[Coordinates](w, island), false)
}
