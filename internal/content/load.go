package content

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-mudengine/internal/storage"
)

// Stores bundles the asset stores a world is built from.
type Stores struct {
	Rooms storage.Storer[*RoomSpec]
	Items storage.Storer[*ItemSpec]
	Npcs  storage.Storer[*NpcSpec]
}

// OpenStores reads every asset under the given directories.
func OpenStores(roomsPath, itemsPath, npcsPath string) (Stores, error) {
	rooms, err := storage.NewFileStore[*RoomSpec](roomsPath)
	if err != nil {
		return Stores{}, fmt.Errorf("loading rooms: %w", err)
	}
	items, err := storage.NewFileStore[*ItemSpec](itemsPath)
	if err != nil {
		return Stores{}, fmt.Errorf("loading items: %w", err)
	}
	npcs, err := storage.NewFileStore[*NpcSpec](npcsPath)
	if err != nil {
		return Stores{}, fmt.Errorf("loading npcs: %w", err)
	}
	return Stores{Rooms: rooms, Items: items, Npcs: npcs}, nil
}

// Loader returns a function that builds the content of s into a world.
func (s Stores) Loader() func(*ecs.World) error {
	return func(w *ecs.World) error {
		return Load(w, s)
	}
}

// loader remembers which entity each room became while a world is built.
type loader struct {
	w      *ecs.World
	stores Stores
	rooms  map[string]ecs.Entity
}

// Load spawns every room, item and NPC in s. Cross references are checked
// before anything is spawned. Rooms are placed on the map relative to the
// first spawn room.
func Load(w *ecs.World, s Stores) error {
	if err := s.validateRefs(); err != nil {
		return err
	}

	l := &loader{w: w, stores: s, rooms: map[string]ecs.Entity{}}

	rooms := s.Rooms.GetAll()
	ids := slices.Sorted(maps.Keys(rooms))
	var spawn ecs.Entity
	for _, id := range ids {
		e := l.spawnRoom(rooms[id])
		l.rooms[id] = e
		if rooms[id].Spawn && spawn == 0 {
			spawn = e
		}
	}
	if spawn == 0 {
		return fmt.Errorf("no room is marked as the spawn room")
	}

	el := errors.NewErrorList()
	made := map[ecs.Entity]map[game.Direction]bool{}
	for _, id := range ids {
		el.Add(l.connect(id, rooms[id], made))
	}
	if err := el.Err(); err != nil {
		return err
	}

	items := s.Items.GetAll()
	for _, id := range slices.Sorted(maps.Keys(items)) {
		if spec := items[id]; spec.Room.IsSet() {
			l.spawnItem(spec, l.rooms[spec.Room.Id()])
		}
	}

	npcs := s.Npcs.GetAll()
	for _, id := range slices.Sorted(maps.Keys(npcs)) {
		l.spawnNpc(npcs[id])
	}

	game.PlaceRooms(w, spawn)
	return nil
}

// validateRefs checks that every reference names an asset that exists.
func (s Stores) validateRefs() error {
	el := errors.NewErrorList()

	for id, room := range s.Rooms.GetAll() {
		for dir, exit := range room.Exits {
			if _, err := exit.To.Resolve(s.Rooms); err != nil {
				el.Add(fmt.Errorf("room %s exit %s: %w", id, dir, err))
			}
		}
	}
	for id, item := range s.Items.GetAll() {
		if !item.Room.IsSet() {
			continue
		}
		if _, err := item.Room.Resolve(s.Rooms); err != nil {
			el.Add(fmt.Errorf("item %s: %w", id, err))
		}
	}
	for id, npc := range s.Npcs.GetAll() {
		if _, err := npc.Room.Resolve(s.Rooms); err != nil {
			el.Add(fmt.Errorf("npc %s: %w", id, err))
		}
		for _, ref := range npc.Inventory {
			if _, err := ref.Resolve(s.Items); err != nil {
				el.Add(fmt.Errorf("npc %s: %w", id, err))
			}
		}
	}

	return el.Err()
}

func (l *loader) spawnRoom(spec *RoomSpec) ecs.Entity {
	e := game.NewRoom(l.w, spec.Name, spec.Description)
	if spec.Icon != "" {
		ecs.MustGet[game.Room](l.w, e).MapIcon = game.NewMapIcon(spec.Icon, game.White, game.Black)
	}
	if spec.Spawn {
		ecs.Attach(l.w, e, game.SpawnRoom{})
	}
	return e
}

// connect creates the exits declared by the room with the given id. An exit
// already created as the far side of another room's exit is skipped, but it
// must agree with what that room declared.
func (l *loader) connect(id string, spec *RoomSpec, made map[ecs.Entity]map[game.Direction]bool) error {
	from := l.rooms[id]
	dirs := make(map[game.Direction]string, len(spec.Exits))
	for key := range spec.Exits {
		d, _ := game.ParseDirection(key)
		dirs[d] = key
	}

	el := errors.NewErrorList()
	for _, d := range game.AllDirections() {
		key, ok := dirs[d]
		if !ok {
			continue
		}
		exit := spec.Exits[key]
		to := l.rooms[exit.To.Id()]

		if made[from][d] {
			_, conn, _ := game.ConnectionIn(l.w, from, d)
			if conn.Destination != to {
				el.Add(fmt.Errorf("room %s exit %s conflicts with the exit leading here", id, d))
			}
			continue
		}
		if !exit.OneWay && made[to][d.Opposite()] {
			el.Add(fmt.Errorf("room %s exit %s: %s already has an exit %s", id, d, exit.To.Id(), d.Opposite()))
			continue
		}

		game.Connect(l.w, from, to, d, game.ConnectOptions{
			OneWay:   exit.OneWay,
			Door:     exit.Door,
			Open:     exit.Open,
			DoorName: exit.DoorName,
		})
		mark(made, from, d)
		if !exit.OneWay {
			mark(made, to, d.Opposite())
		}
	}
	return el.Err()
}

func mark(made map[ecs.Entity]map[game.Direction]bool, room ecs.Entity, d game.Direction) {
	if made[room] == nil {
		made[room] = map[game.Direction]bool{}
	}
	made[room][d] = true
}

func (l *loader) spawnItem(spec *ItemSpec, in ecs.Entity) ecs.Entity {
	w := l.w
	e := w.Spawn()
	ecs.Attach(w, e, spec.description(game.PronounsIt))

	if !spec.Fixed {
		hands := spec.Hands
		if hands == 0 {
			hands = 1
		}
		ecs.Attach(w, e, game.Item{Hands: hands})
	}
	if spec.Weight > 0 {
		ecs.Attach(w, e, game.Weight(spec.Weight))
	}
	if spec.Volume > 0 {
		ecs.Attach(w, e, game.Volume(spec.Volume))
	}
	if spec.Calories > 0 {
		ecs.Attach(w, e, game.Edible{})
		ecs.Attach(w, e, game.Calories(spec.Calories))
	}
	if spec.Wearable != nil {
		parts := make([]game.BodyPart, len(spec.Wearable.BodyParts))
		for i, p := range spec.Wearable.BodyParts {
			parts[i] = game.BodyPart(p)
		}
		ecs.Attach(w, e, game.Wearable{Thickness: spec.Wearable.Thickness, BodyParts: parts})
	}
	if spec.Weapon != nil {
		ecs.Attach(w, e, spec.Weapon.component())
	}
	if spec.Container != nil {
		ecs.Attach(w, e, game.Container{MaxVolume: spec.Container.MaxVolume, MaxWeight: spec.Container.MaxWeight})
	}
	if spec.Fluid != nil {
		contents := game.Fluid{}
		for t, v := range spec.Fluid.Contents {
			contents[game.FluidType(t)] = v
		}
		ecs.Attach(w, e, game.FluidContainer{Contents: contents, Capacity: spec.Fluid.Capacity})
	}

	game.MoveEntity(w, e, in)
	return e
}

func (l *loader) spawnNpc(spec *NpcSpec) ecs.Entity {
	w := l.w
	e := w.Spawn()
	ecs.Attach(w, e, spec.description(pronounSets[spec.Pronouns]))
	ecs.Attach(w, e, game.Living{})
	ecs.Attach(w, e, game.Container{})
	ecs.Attach(w, e, game.NewStats())
	ecs.Attach(w, e, game.WornItems{})

	vitals := game.NewVitals()
	if spec.Health > 0 {
		vitals.Health = game.NewConstrainedValue(spec.Health, 0, spec.Health)
	}
	ecs.Attach(w, e, vitals)

	if spec.Weapon != nil {
		ecs.Attach(w, e, spec.Weapon.component())
	}
	if spec.Wander > 0 {
		ecs.Attach(w, e, game.WanderBehavior{MoveChancePerTick: spec.Wander})
	}
	if spec.SelfDefense {
		ecs.Attach(w, e, game.SelfDefenseBehavior{})
	}
	if spec.Greeting != "" {
		ecs.Attach(w, e, game.GreetBehavior{Greeting: spec.Greeting})
	}

	game.MoveEntity(w, e, l.rooms[spec.Room.Id()])

	for _, ref := range spec.Inventory {
		item, _ := ref.Resolve(l.stores.Items)
		l.spawnItem(item, e)
	}
	return e
}
