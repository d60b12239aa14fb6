package game

import (
	"slices"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

type WeaponType string

const (
	Firearm  WeaponType = "firearm"
	Bow      WeaponType = "bow"
	Blade    WeaponType = "blade"
	Bludgeon WeaponType = "bludgeon"
	Fists    WeaponType = "fists"
)

// Weapon lets an entity be used to attack. An entity with a Weapon component
// and no Item component attacks with it innately.
type Weapon struct {
	Type      WeaponType
	MinDamage int
	MaxDamage int
	HitVerb   string
}

// DefaultFists is used by entities attacking with no weapon.
var DefaultFists = Weapon{Type: Fists, MinDamage: 1, MaxDamage: 3, HitVerb: "punch"}

// CombatState tracks who an entity is fighting.
type CombatState struct {
	Opponents []ecs.Entity
}

func (c *CombatState) Add(e ecs.Entity) {
	if !slices.Contains(c.Opponents, e) {
		c.Opponents = append(c.Opponents, e)
	}
}

func (c *CombatState) Remove(e ecs.Entity) {
	c.Opponents = slices.DeleteFunc(c.Opponents, func(o ecs.Entity) bool { return o == e })
}

// EnterCombat records a and b as opponents of each other.
func EnterCombat(w *ecs.World, a, b ecs.Entity) {
	for _, pair := range [][2]ecs.Entity{{a, b}, {b, a}} {
		cs, ok := ecs.Get[CombatState](w, pair[0])
		if !ok {
			ecs.Attach(w, pair[0], CombatState{})
			cs, _ = ecs.Get[CombatState](w, pair[0])
		}
		cs.Add(pair[1])
	}
}

// LeaveCombat removes e from every combat it is part of.
func LeaveCombat(w *ecs.World, e ecs.Entity) {
	cs, ok := ecs.Get[CombatState](w, e)
	if !ok {
		return
	}
	for _, o := range cs.Opponents {
		if ocs, ok := ecs.Get[CombatState](w, o); ok {
			ocs.Remove(e)
			if len(ocs.Opponents) == 0 {
				ecs.Detach[CombatState](w, o)
			}
		}
	}
	ecs.Detach[CombatState](w, e)
}

// WanderBehavior makes an NPC move through a random exit now and then.
type WanderBehavior struct {
	MoveChancePerTick float64
}

// SelfDefenseBehavior makes an NPC fight back against its opponents.
type SelfDefenseBehavior struct{}

// GreetBehavior makes an NPC say Greeting when someone arrives.
type GreetBehavior struct {
	Greeting string
}
