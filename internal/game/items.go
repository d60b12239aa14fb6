package game

import (
	"maps"
	"slices"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

// Volume in liters.
type Volume float64

// Weight in kilograms.
type Weight float64

// Density in kilograms per liter.
type Density float64

// Item marks an entity that can be picked up. Hands is how many hands it
// takes to hold, 1 or 2; zero counts as 1.
type Item struct {
	Hands int
}

// DefaultHands is how many hands a player holds things with.
const DefaultHands = 2

// HandsFor returns how many hands holding item takes.
func HandsFor(w *ecs.World, item ecs.Entity) int {
	if it, ok := ecs.Get[Item](w, item); ok && it.Hands > 1 {
		return it.Hands
	}
	return 1
}

// HeldItems are the carried items an entity has in its hands.
type HeldItems struct {
	Hands int
	Items []ecs.Entity
}

func (h *HeldItems) Holds(item ecs.Entity) bool {
	return slices.Contains(h.Items, item)
}

// FreeHands returns how many hands are not holding anything.
func (h *HeldItems) FreeHands(w *ecs.World) int {
	free := h.Hands
	for _, item := range h.Items {
		free -= HandsFor(w, item)
	}
	return free
}

func (h *HeldItems) Remove(item ecs.Entity) {
	h.Items = slices.DeleteFunc(h.Items, func(e ecs.Entity) bool { return e == item })
}

// Edible marks an entity that can be eaten.
type Edible struct{}

// Calories in an edible entity.
type Calories int

// BodyPart is a location an item can be worn on or a blow can land on.
type BodyPart string

const (
	Head      BodyPart = "head"
	Torso     BodyPart = "torso"
	LeftArm   BodyPart = "left arm"
	RightArm  BodyPart = "right arm"
	LeftHand  BodyPart = "left hand"
	RightHand BodyPart = "right hand"
	LeftLeg   BodyPart = "left leg"
	RightLeg  BodyPart = "right leg"
	LeftFoot  BodyPart = "left foot"
	RightFoot BodyPart = "right foot"
)

// Wearable describes what an item covers when worn. BodyParts is never empty.
type Wearable struct {
	Thickness float64
	BodyParts []BodyPart
}

// WornItems are the items an entity is wearing, in the order they were put on.
type WornItems struct {
	Items []ecs.Entity
}

// WearerOf returns the item covering part, if any.
func (wi *WornItems) WearerOf(w *ecs.World, part BodyPart) (ecs.Entity, bool) {
	for _, item := range wi.Items {
		if wearable, ok := ecs.Get[Wearable](w, item); ok && slices.Contains(wearable.BodyParts, part) {
			return item, true
		}
	}
	return 0, false
}

func (wi *WornItems) Remove(item ecs.Entity) {
	wi.Items = slices.DeleteFunc(wi.Items, func(e ecs.Entity) bool { return e == item })
}

// FluidType is a kind of liquid. Names, densities and hydration factors live in the Catalog.
type FluidType string

const (
	Water      FluidType = "water"
	DirtyWater FluidType = "dirty water"
	Alcohol    FluidType = "alcohol"
)

// fluidTolerance absorbs float error when fluid is split and recombined.
const fluidTolerance = 1e-9

// Fluid maps each fluid type to its volume in liters. All volumes are positive.
type Fluid map[FluidType]float64

func (f Fluid) Total() float64 {
	var total float64
	for _, v := range f {
		total += v
	}
	return total
}

// Types returns the contained fluid types in name order.
func (f Fluid) Types() []FluidType {
	return slices.Sorted(maps.Keys(f))
}

// Remove takes up to liters out of f, proportionally across types, and
// returns what was removed.
func (f Fluid) Remove(liters float64) Fluid {
	total := f.Total()
	removed := Fluid{}
	if total <= 0 || liters <= 0 {
		return removed
	}
	ratio := min(liters/total, 1)
	for t, v := range f {
		take := v * ratio
		removed[t] = take
		if v-take <= fluidTolerance {
			delete(f, t)
		} else {
			f[t] = v - take
		}
	}
	return removed
}

// Add pours other into f.
func (f Fluid) Add(other Fluid) {
	for t, v := range other {
		if v > 0 {
			f[t] += v
		}
	}
}

// FluidContainer holds liquid up to Capacity liters.
type FluidContainer struct {
	Contents Fluid
	Capacity float64
}

// Space returns how many more liters fit.
func (fc *FluidContainer) Space() float64 {
	return max(fc.Capacity-fc.Contents.Total(), 0)
}

// WeightOf computes the total weight of e including anything it contains.
func WeightOf(w *ecs.World, e ecs.Entity) float64 {
	var total float64
	if wt, ok := ecs.Get[Weight](w, e); ok {
		total = float64(*wt)
	} else if d, ok := ecs.Get[Density](w, e); ok {
		if v, ok := ecs.Get[Volume](w, e); ok {
			total = float64(*d) * float64(*v)
		}
	}

	if fc, ok := ecs.Get[FluidContainer](w, e); ok {
		cat := CatalogOf(w)
		for t, liters := range fc.Contents {
			total += liters * cat.Fluid(t).Density
		}
	}

	if c, ok := ecs.Get[Container](w, e); ok && !ecs.Has[Room](w, e) {
		for _, child := range c.entities {
			total += WeightOf(w, child)
		}
	}
	return total
}

// VolumeOf returns the declared volume of e, or zero.
func VolumeOf(w *ecs.World, e ecs.Entity) float64 {
	if v, ok := ecs.Get[Volume](w, e); ok {
		return float64(*v)
	}
	return 0
}
