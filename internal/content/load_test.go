package content

import (
	"encoding/json"
	"testing"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-mudengine/internal/storage"
	"github.com/pixil98/go-testutil"
)

func ref[T storage.ValidatingSpec](id string) storage.Ref[T] {
	return storage.NewRef[T](id)
}

func newWorld() *ecs.World {
	w := ecs.NewWorld()
	game.Setup(w, game.GameOptions{})
	return w
}

func roomNamed(t *testing.T, w *ecs.World, name string) ecs.Entity {
	t.Helper()
	for e, r := range ecs.Query[game.Room](w) {
		if r.Name == name {
			return e
		}
	}
	t.Fatalf("no room named %q", name)
	return 0
}

func namedIn(w *ecs.World, container ecs.Entity, name string) (ecs.Entity, bool) {
	for _, e := range game.ContentsOf(w, container) {
		if d, ok := ecs.Get[game.Description](w, e); ok && d.Name == name {
			return e, true
		}
	}
	return 0, false
}

func smallWorld() Stores {
	return Stores{
		Rooms: storage.MapStore[*RoomSpec]{
			"hall": {Name: "Hall", Spawn: true, Exits: map[string]ExitSpec{
				"n":    {To: ref[*RoomSpec]("yard")},
				"down": {To: ref[*RoomSpec]("cellar"), Door: true, DoorName: "trapdoor"},
			}},
			"yard":   {Name: "Yard", Exits: map[string]ExitSpec{"south": {To: ref[*RoomSpec]("hall")}}},
			"cellar": {Name: "Cellar", Exits: map[string]ExitSpec{"east": {To: ref[*RoomSpec]("hall"), OneWay: true}}},
		},
		Items: storage.MapStore[*ItemSpec]{
			"apple": {Describable: Describable{Name: "apple", Article: "an"}, Room: ref[*RoomSpec]("yard"), Calories: 50},
			"tooth": {Describable: Describable{Name: "tooth", Article: "a"}},
		},
		Npcs: storage.MapStore[*NpcSpec]{
			"rat": {
				Describable: Describable{Name: "rat", Article: "a"},
				Room:        ref[*RoomSpec]("cellar"),
				Health:      12,
				Inventory:   []storage.Ref[*ItemSpec]{ref[*ItemSpec]("tooth")},
				SelfDefense: true,
			},
		},
	}
}

func TestLoad(t *testing.T) {
	w := newWorld()
	if err := Load(w, smallWorld()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := game.CheckInvariants(w); err != nil {
		t.Fatalf("invariants: %v", err)
	}

	hall := roomNamed(t, w, "Hall")
	yard := roomNamed(t, w, "Yard")
	cellar := roomNamed(t, w, "Cellar")

	spawn, err := game.FindSpawnRoom(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "spawn room", spawn, hall)

	_, north, ok := game.ConnectionIn(w, hall, game.North)
	testutil.AssertEqual(t, "north exit", ok && north.Destination == yard, true)
	_, south, ok := game.ConnectionIn(w, yard, game.South)
	testutil.AssertEqual(t, "declared twice, made once", ok && south.Destination == hall, true)
	testutil.AssertEqual(t, "yard exits", len(game.ConnectionsOf(w, yard)), 1)

	door, _, ok := game.ConnectionIn(w, hall, game.Down)
	testutil.AssertEqual(t, "door exists", ok, true)
	testutil.AssertEqual(t, "door closed", ecs.MustGet[game.OpenState](w, door).Open, false)

	_, east, ok := game.ConnectionIn(w, cellar, game.East)
	testutil.AssertEqual(t, "one way", ok && east.OneWay, true)
	_, _, ok = game.ConnectionIn(w, hall, game.West)
	testutil.AssertEqual(t, "no way back", ok, false)

	apple, ok := namedIn(w, yard, "apple")
	testutil.AssertEqual(t, "apple placed", ok, true)
	testutil.AssertEqual(t, "apple edible", ecs.Has[game.Edible](w, apple), true)
	testutil.AssertEqual(t, "apple portable", ecs.MustGet[game.Item](w, apple).Hands, 1)

	rat, ok := namedIn(w, cellar, "rat")
	testutil.AssertEqual(t, "rat placed", ok, true)
	testutil.AssertEqual(t, "rat health", ecs.MustGet[game.Vitals](w, rat).Health.Max(), 12.0)
	testutil.AssertEqual(t, "rat defends", ecs.Has[game.SelfDefenseBehavior](w, rat), true)
	_, ok = namedIn(w, rat, "tooth")
	testutil.AssertEqual(t, "rat carries tooth", ok, true)

	testutil.AssertEqual(t, "cellar below", *ecs.MustGet[game.Coordinates](w, cellar), game.Coordinates{Z: -1})
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		modify func(s Stores)
		expErr string
	}{
		"missing exit destination": {
			modify: func(s Stores) {
				s.Rooms.(storage.MapStore[*RoomSpec])["yard"].Exits["west"] = ExitSpec{To: ref[*RoomSpec]("nowhere")}
			},
			expErr: `room yard exit west: RoomSpec "nowhere" not found`,
		},
		"missing npc item": {
			modify: func(s Stores) {
				s.Npcs.(storage.MapStore[*NpcSpec])["rat"].Inventory = []storage.Ref[*ItemSpec]{ref[*ItemSpec]("cheese")}
			},
			expErr: `npc rat: ItemSpec "cheese" not found`,
		},
		"no spawn room": {
			modify: func(s Stores) {
				s.Rooms.(storage.MapStore[*RoomSpec])["hall"].Spawn = false
			},
			expErr: "no room is marked as the spawn room",
		},
		"conflicting exits": {
			modify: func(s Stores) {
				s.Rooms.(storage.MapStore[*RoomSpec])["cellar"].Exits["up"] = ExitSpec{To: ref[*RoomSpec]("yard")}
			},
			expErr: "room hall exit down: cellar already has an exit up",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := smallWorld()
			tt.modify(s)
			testutil.AssertErrorContains(t, Load(newWorld(), s), tt.expErr)
		})
	}
}

func TestSpecValidate(t *testing.T) {
	tests := map[string]struct {
		spec   storage.ValidatingSpec
		expErr string
	}{
		"room needs a name": {
			spec:   &RoomSpec{},
			expErr: "room name is required",
		},
		"room exit direction": {
			spec:   &RoomSpec{Name: "Hall", Exits: map[string]ExitSpec{"sideways": {To: ref[*RoomSpec]("yard")}}},
			expErr: `exit "sideways" is not a direction`,
		},
		"open passage": {
			spec:   &RoomSpec{Name: "Hall", Exits: map[string]ExitSpec{"north": {To: ref[*RoomSpec]("yard"), Open: true}}},
			expErr: "only doors can be open",
		},
		"uppercase alias": {
			spec:   &ItemSpec{Describable: Describable{Name: "apple", Aliases: []string{"Fruit"}}},
			expErr: `alias "Fruit" must be lowercase`,
		},
		"overfull flask": {
			spec:   &ItemSpec{Describable: Describable{Name: "flask"}, Fluid: &FluidSpec{Capacity: 1, Contents: map[string]float64{"water": 2}}},
			expErr: "exceed capacity",
		},
		"bare wearable": {
			spec:   &ItemSpec{Describable: Describable{Name: "cap"}, Wearable: &WearableSpec{}},
			expErr: "must cover a body part",
		},
		"npc without room": {
			spec:   &NpcSpec{Describable: Describable{Name: "rat"}},
			expErr: "RoomSpec identifier is required",
		},
		"npc pronouns": {
			spec:   &NpcSpec{Describable: Describable{Name: "rat"}, Room: ref[*RoomSpec]("hall"), Pronouns: "xe"},
			expErr: `pronouns "xe" are not known`,
		},
		"npc weapon": {
			spec:   &NpcSpec{Describable: Describable{Name: "rat"}, Room: ref[*RoomSpec]("hall"), Weapon: &WeaponSpec{Type: "blade", MinDamage: 3, MaxDamage: 1, HitVerb: "bite"}},
			expErr: "weapon damage 3-1 is invalid",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertErrorContains(t, tt.spec.Validate(), tt.expErr)
		})
	}
}

func TestItemSpec_Unmarshal(t *testing.T) {
	var spec ItemSpec
	err := json.Unmarshal([]byte(`{"name":"cup","article":"a","room":"hall","fluid":{"capacity":0.5}}`), &spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "name", spec.Name, "cup")
	testutil.AssertEqual(t, "room", spec.Room.Id(), "hall")
	testutil.AssertEqual(t, "valid", spec.Validate() == nil, true)
}

func TestOpenStores_BundledAssets(t *testing.T) {
	stores, err := OpenStores("../../assets/rooms", "../../assets/items", "../../assets/npcs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := newWorld()
	if err := stores.Loader()(w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := game.CheckInvariants(w); err != nil {
		t.Fatalf("invariants: %v", err)
	}

	square := roomNamed(t, w, "Village Square")
	_, ok := ecs.Get[game.SpawnRoom](w, square)
	testutil.AssertEqual(t, "square is spawn", ok, true)
	testutil.AssertEqual(t, "every room placed", len(ecs.MustResource[game.GameMap](w).Rooms), 6)
}
