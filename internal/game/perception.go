package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

// LocationOf returns the container e is directly inside.
func LocationOf(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	loc, ok := ecs.Get[Location](w, e)
	if !ok {
		return 0, false
	}
	return loc.Container, true
}

// RoomOf walks up the containers of e until it reaches a room. A room is its own room.
func RoomOf(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	for range 64 {
		if ecs.Has[Room](w, e) {
			return e, true
		}
		next, ok := LocationOf(w, e)
		if !ok {
			return 0, false
		}
		e = next
	}
	return 0, false
}

// ContentsOf lists the entities inside e in ascending order.
func ContentsOf(w *ecs.World, e ecs.Entity) []ecs.Entity {
	c, ok := ecs.Get[Container](w, e)
	if !ok {
		return nil
	}
	return c.Entities()
}

// PerceivedEntities lists what e can refer to: itself, its inventory, and the
// contents of its location including connections.
func PerceivedEntities(w *ecs.World, e ecs.Entity) []ecs.Entity {
	out := []ecs.Entity{e}
	out = append(out, ContentsOf(w, e)...)
	if loc, ok := LocationOf(w, e); ok {
		for _, f := range ContentsOf(w, loc) {
			if f != e {
				out = append(out, f)
			}
		}
	}
	return out
}

// Perceives reports whether e can perceive f.
func Perceives(w *ecs.World, e, f ecs.Entity) bool {
	return slices.Contains(PerceivedEntities(w, e), f)
}

// ConnectionsOf lists the connection entities in room in canonical direction order.
func ConnectionsOf(w *ecs.World, room ecs.Entity) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range ContentsOf(w, room) {
		if ecs.Has[Connection](w, e) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b ecs.Entity) int {
		return int(ecs.MustGet[Connection](w, a).Direction) - int(ecs.MustGet[Connection](w, b).Direction)
	})
	return out
}

// ConnectionIn returns the connection out of room heading in d.
func ConnectionIn(w *ecs.World, room ecs.Entity, d Direction) (ecs.Entity, *Connection, bool) {
	for _, e := range ConnectionsOf(w, room) {
		c := ecs.MustGet[Connection](w, e)
		if c.Direction == d {
			return e, c, true
		}
	}
	return 0, nil, false
}

// IsLiving reports whether e is described as a creature.
func IsLiving(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has[Living](w, e) || ecs.Has[Player](w, e) || ecs.Has[Vitals](w, e)
}

// DescribeLocation describes room as seen by viewer.
func DescribeLocation(w *ecs.World, viewer, room ecs.Entity) LocationDescription {
	r := ecs.MustGet[Room](w, room)
	desc := LocationDescription{Name: r.Name, Description: r.Description}

	for _, e := range ContentsOf(w, room) {
		if e == viewer || ecs.Has[Connection](w, e) {
			continue
		}
		d, ok := ecs.Get[Description](w, e)
		if !ok {
			continue
		}
		if IsLiving(w, e) {
			desc.Living = append(desc.Living, d.Indefinite())
		} else {
			desc.Objects = append(desc.Objects, d.Indefinite())
		}
	}

	for _, e := range ConnectionsOf(w, room) {
		c := ecs.MustGet[Connection](w, e)
		exit := ExitDescription{Direction: c.Direction, Destination: Name(w, c.Destination)}
		if open, ok := ecs.Get[OpenState](w, e); ok && !open.Open {
			exit.Closed = true
		}
		desc.Exits = append(desc.Exits, exit)
	}
	return desc
}

// DescribeEntity describes e as seen up close.
func DescribeEntity(w *ecs.World, e ecs.Entity) EntityDescription {
	desc := EntityDescription{Name: Name(w, e)}
	if d, ok := ecs.Get[Description](w, e); ok {
		desc.Name = d.Indefinite()
		desc.Description = d.Long
	}
	if cal, ok := ecs.Get[Calories](w, e); ok && ecs.Has[Edible](w, e) {
		desc.Attributes = append(desc.Attributes, "is edible", fmt.Sprintf("contains %d calories", int(*cal)))
	}
	if fc, ok := ecs.Get[FluidContainer](w, e); ok {
		desc.Attributes = append(desc.Attributes, describeFluid(w, fc))
	}
	if wearable, ok := ecs.Get[Wearable](w, e); ok {
		parts := make([]string, len(wearable.BodyParts))
		for i, p := range wearable.BodyParts {
			parts[i] = string(p)
		}
		desc.Attributes = append(desc.Attributes, "can be worn on the "+FormatList(parts))
	}
	if open, ok := ecs.Get[OpenState](w, e); ok {
		if open.Open {
			desc.Attributes = append(desc.Attributes, "is open")
		} else {
			desc.Attributes = append(desc.Attributes, "is closed")
		}
	}
	return desc
}

func describeFluid(w *ecs.World, fc *FluidContainer) string {
	if fc.Contents.Total() <= 0 {
		return "is empty"
	}
	cat := CatalogOf(w)
	var parts []string
	for _, t := range fc.Contents.Types() {
		parts = append(parts, fmt.Sprintf("%.2fL of %s", fc.Contents[t], cat.Fluid(t).Name))
	}
	return "contains " + FormatList(parts)
}
