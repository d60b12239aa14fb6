package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudengine/internal/ecs"
)

// MoveEntity puts e inside dest, keeping Location and Container in agreement.
// dest must have a Container.
func MoveEntity(w *ecs.World, e, dest ecs.Entity) {
	c := ecs.MustGet[Container](w, dest)
	RemoveFromLocation(w, e)
	c.add(e)
	ecs.Attach(w, e, Location{Container: dest})
}

// RemoveFromLocation takes e out of whatever contains it.
func RemoveFromLocation(w *ecs.World, e ecs.Entity) {
	loc, ok := ecs.Get[Location](w, e)
	if !ok {
		return
	}
	if c, ok := ecs.Get[Container](w, loc.Container); ok {
		c.remove(e)
	}
	if held, ok := ecs.Get[HeldItems](w, loc.Container); ok {
		held.Remove(e)
	}
	ecs.Detach[Location](w, e)
}

// DespawnEntity removes e and everything inside it from the world at the end
// of the tick. They leave their containers immediately.
func DespawnEntity(w *ecs.World, e ecs.Entity) {
	for _, child := range ContentsOf(w, e) {
		DespawnEntity(w, child)
	}
	RemoveFromLocation(w, e)
	if worn, ok := ecs.Get[WornItems](w, e); ok {
		worn.Items = nil
	}
	if held, ok := ecs.Get[HeldItems](w, e); ok {
		held.Items = nil
	}
	LeaveCombat(w, e)
	w.Despawn(e)
}

// NewRoom spawns a room with an empty container.
func NewRoom(w *ecs.World, name, description string) ecs.Entity {
	e := w.Spawn()
	ecs.Attach(w, e, Room{Name: name, Description: description, MapIcon: DefaultRoomIcon})
	ecs.Attach(w, e, Container{})
	return e
}

// ConnectOptions adjust a connection made with Connect.
type ConnectOptions struct {
	OneWay bool
	// Door adds an OpenState to both sides, starting closed unless Open is set.
	Door bool
	Open bool
	// DoorName describes the door for targeting, e.g. "door".
	DoorName string
}

// Connect links from to to in direction d, and back again in d.Opposite()
// unless the connection is one way. It returns the connection in from.
func Connect(w *ecs.World, from, to ecs.Entity, d Direction, opts ConnectOptions) ecs.Entity {
	out := spawnConnection(w, from, to, d, opts)
	if opts.OneWay {
		ecs.MustGet[Connection](w, out).OneWay = true
		return out
	}
	back := spawnConnection(w, to, from, d.Opposite(), opts)
	ecs.MustGet[Connection](w, out).OtherSide = back
	ecs.MustGet[Connection](w, back).OtherSide = out
	return out
}

func spawnConnection(w *ecs.World, from, to ecs.Entity, d Direction, opts ConnectOptions) ecs.Entity {
	e := w.Spawn()
	ecs.Attach(w, e, Connection{Direction: d, Destination: to})
	name := d.String()
	aliases := []string{d.Short(), d.String()}
	if opts.Door {
		ecs.Attach(w, e, OpenState{Open: opts.Open})
		doorName := opts.DoorName
		if doorName == "" {
			doorName = "door"
		}
		name = fmt.Sprintf("%s to the %s", doorName, d)
		aliases = append(aliases, doorName, d.String()+" "+doorName, d.Short()+" "+doorName)
	}
	ecs.Attach(w, e, Description{Name: name, Article: "the", Aliases: aliases, Pronouns: PronounsIt})
	MoveEntity(w, e, from)
	return e
}

// SetOpen updates a door and its other side together.
func SetOpen(w *ecs.World, e ecs.Entity, open bool) {
	if s, ok := ecs.Get[OpenState](w, e); ok {
		s.Open = open
	}
	if c, ok := ecs.Get[Connection](w, e); ok && c.OtherSide != 0 {
		if s, ok := ecs.Get[OpenState](w, c.OtherSide); ok {
			s.Open = open
		}
	}
}

// CheckInvariants verifies the structural relations of the world.
func CheckInvariants(w *ecs.World) error {
	el := errors.NewErrorList()

	for e, loc := range ecs.Query[Location](w) {
		c, ok := ecs.Get[Container](w, loc.Container)
		if !ok {
			el.Add(fmt.Errorf("%s is located in %s which is not a container", e, loc.Container))
			continue
		}
		if !c.Contains(e) {
			el.Add(fmt.Errorf("%s is located in %s but not listed by it", e, loc.Container))
		}
	}

	for container, c := range ecs.Query[Container](w) {
		for _, e := range c.entities {
			loc, ok := ecs.Get[Location](w, e)
			if !ok || loc.Container != container {
				el.Add(fmt.Errorf("%s lists %s which is not located in it", container, e))
			}
		}
	}

	for e, c := range ecs.Query[Connection](w) {
		if c.OneWay {
			continue
		}
		room, ok := LocationOf(w, e)
		if !ok {
			el.Add(fmt.Errorf("connection %s is not in a room", e))
			continue
		}
		back, ok := ecs.Get[Connection](w, c.OtherSide)
		if !ok {
			el.Add(fmt.Errorf("connection %s has no reverse and is not one way", e))
			continue
		}
		backRoom, _ := LocationOf(w, c.OtherSide)
		if back.Direction != c.Direction.Opposite() || back.Destination != room || backRoom != c.Destination {
			el.Add(fmt.Errorf("connection %s %s does not match its reverse %s", e, c.Direction, c.OtherSide))
		}
	}

	for e, h := range ecs.Query[HeldItems](w) {
		for _, item := range h.Items {
			if loc, ok := LocationOf(w, item); !ok || loc != e {
				el.Add(fmt.Errorf("%s holds %s which it does not carry", e, item))
			}
		}
		if h.FreeHands(w) < 0 {
			el.Add(fmt.Errorf("%s holds more than its %d hands can", e, h.Hands))
		}
	}

	for e, fc := range ecs.Query[FluidContainer](w) {
		for t, v := range fc.Contents {
			if v <= 0 {
				el.Add(fmt.Errorf("%s has non-positive %s", e, t))
			}
		}
		if fc.Contents.Total() > fc.Capacity+fluidTolerance {
			el.Add(fmt.Errorf("%s holds %.2fL, over its %.2fL capacity", e, fc.Contents.Total(), fc.Capacity))
		}
	}

	for e, v := range ecs.Query[Vitals](w) {
		for _, t := range []VitalType{Health, Satiety, Hydration, Energy} {
			cv := v.Value(t)
			if cv.Get() < cv.Min() || cv.Get() > cv.Max() {
				el.Add(fmt.Errorf("%s %s %v outside [%v, %v]", e, t, cv.Get(), cv.Min(), cv.Max()))
			}
		}
	}

	return el.Err()
}
