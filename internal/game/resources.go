package game

import (
	"math/rand/v2"
	"time"

	"github.com/pixil98/go-mudengine/internal/ecs"
	"github.com/pixil98/go-mudengine/internal/notify"
)

// GameOptions is the engine configuration resource. A zero AfkTimeout
// disables AFK detection.
type GameOptions struct {
	AfkTimeout time.Duration
}

type FluidInfo struct {
	Name            string
	Density         float64
	HydrationFactor float64
}

type SkillInfo struct {
	Name          string
	BaseAttribute Attribute
}

type WeaponTypeInfo struct {
	Name  string
	Skill Skill
}

// Catalog holds the lookup tables of a world.
type Catalog struct {
	Fluids      map[FluidType]FluidInfo
	Attributes  map[Attribute]string
	Skills      map[Skill]SkillInfo
	WeaponTypes map[WeaponType]WeaponTypeInfo
	// BodyPartWeights is the relative chance of a blow landing on each part.
	BodyPartWeights map[BodyPart]float64
}

func DefaultCatalog() Catalog {
	return Catalog{
		Fluids: map[FluidType]FluidInfo{
			Water:      {Name: "water", Density: 1.0, HydrationFactor: 1.0},
			DirtyWater: {Name: "dirty water", Density: 1.1, HydrationFactor: 0.9},
			Alcohol:    {Name: "alcohol", Density: 0.79, HydrationFactor: 0.5},
		},
		Attributes: map[Attribute]string{
			Strength:     "Strength",
			Intelligence: "Intelligence",
			Perception:   "Perception",
			Endurance:    "Endurance",
		},
		Skills: map[Skill]SkillInfo{
			Construction: {Name: "Construction", BaseAttribute: Intelligence},
			Crafting:     {Name: "Crafting", BaseAttribute: Intelligence},
			Scavenging:   {Name: "Scavenging", BaseAttribute: Perception},
			Stealth:      {Name: "Stealth", BaseAttribute: Perception},
			Firearms:     {Name: "Firearms", BaseAttribute: Perception},
			Melee:        {Name: "Melee", BaseAttribute: Strength},
			Medicine:     {Name: "Medicine", BaseAttribute: Intelligence},
			Cooking:      {Name: "Cooking", BaseAttribute: Intelligence},
			Dodging:      {Name: "Dodging", BaseAttribute: Endurance},
		},
		WeaponTypes: map[WeaponType]WeaponTypeInfo{
			Firearm:  {Name: "firearm", Skill: Firearms},
			Bow:      {Name: "bow", Skill: Firearms},
			Blade:    {Name: "blade", Skill: Melee},
			Bludgeon: {Name: "bludgeon", Skill: Melee},
			Fists:    {Name: "fists", Skill: Melee},
		},
		BodyPartWeights: map[BodyPart]float64{
			Head:      0.1,
			Torso:     0.4,
			LeftArm:   0.1,
			RightArm:  0.1,
			LeftHand:  0.025,
			RightHand: 0.025,
			LeftLeg:   0.1,
			RightLeg:  0.1,
			LeftFoot:  0.025,
			RightFoot: 0.025,
		},
	}
}

// CatalogOf returns the world's catalog, inserting the defaults if none exists.
func CatalogOf(w *ecs.World) *Catalog {
	if c, ok := ecs.Resource[Catalog](w); ok {
		return c
	}
	ecs.InsertResource(w, DefaultCatalog())
	return ecs.MustResource[Catalog](w)
}

// Fluid returns the info for t. Unknown fluids are named by their type with
// the density and hydration of water.
func (c *Catalog) Fluid(t FluidType) FluidInfo {
	if info, ok := c.Fluids[t]; ok {
		return info
	}
	return FluidInfo{Name: string(t), Density: 1, HydrationFactor: 1}
}

func (c *Catalog) AttributeName(a Attribute) string {
	if n, ok := c.Attributes[a]; ok {
		return n
	}
	return string(a)
}

func (c *Catalog) Skill(s Skill) SkillInfo {
	if info, ok := c.Skills[s]; ok {
		return info
	}
	return SkillInfo{Name: string(s)}
}

// Rand is the world's random source used by behaviors and combat.
type Rand struct {
	*rand.Rand
}

func NewRand(seed uint64) Rand {
	return Rand{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// RandOf returns the world's random source, inserting a time-seeded one if none exists.
func RandOf(w *ecs.World) *rand.Rand {
	if r, ok := ecs.Resource[Rand](w); ok {
		return r.Rand
	}
	ecs.InsertResource(w, NewRand(uint64(time.Now().UnixNano())))
	return ecs.MustResource[Rand](w).Rand
}

// GameMap indexes rooms by their coordinates.
type GameMap struct {
	Rooms map[Coordinates]ecs.Entity
}

// RealTime is the wall-clock instant of the current Process call.
type RealTime struct {
	Now time.Time
}

// RealNow returns the wall-clock time the simulation is processing at.
func RealNow(w *ecs.World) time.Time {
	if r, ok := ecs.Resource[RealTime](w); ok {
		return r.Now
	}
	return time.Now()
}

// Now returns the current in-game time.
func Now(w *ecs.World) Time {
	if c, ok := ecs.Resource[Clock](w); ok {
		return c.Now
	}
	return NewTime()
}

// Setup installs the resources every world needs.
func Setup(w *ecs.World, opts GameOptions) {
	ecs.InsertResource(w, Clock{Now: NewTime()})
	ecs.InsertResource(w, opts)
	CatalogOf(w)
	ecs.InsertResource(w, NewParsers())
	ecs.InsertResource(w, GameMap{Rooms: map[Coordinates]ecs.Entity{}})
	notify.Install(w)
}
