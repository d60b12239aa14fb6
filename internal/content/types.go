// Package content turns authored JSON assets into world entities.
package content

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudengine/internal/game"
	"github.com/pixil98/go-mudengine/internal/storage"
)

// ExitSpec leads out of a room. Unless OneWay is set the destination gets the
// matching exit back, so only one side needs to declare it.
type ExitSpec struct {
	To       storage.Ref[*RoomSpec] `json:"to"`
	OneWay   bool                   `json:"one_way,omitempty"`
	Door     bool                   `json:"door,omitempty"`
	Open     bool                   `json:"open,omitempty"`
	DoorName string                 `json:"door_name,omitempty"`
}

// RoomSpec defines a room loaded from asset files.
type RoomSpec struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon,omitempty"`
	Spawn       bool                `json:"spawn,omitempty"`
	Exits       map[string]ExitSpec `json:"exits,omitempty"` // direction -> exit
}

// Validate satisfies storage.ValidatingSpec.
func (r *RoomSpec) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}
	if utf8.RuneCountInString(r.Icon) > game.CharsPerTile {
		el.Add(fmt.Errorf("icon %q is longer than %d characters", r.Icon, game.CharsPerTile))
	}

	for dir, exit := range r.Exits {
		if _, ok := game.ParseDirection(dir); !ok {
			el.Add(fmt.Errorf("exit %q is not a direction", dir))
		}
		if err := exit.To.Validate(); err != nil {
			el.Add(fmt.Errorf("exit %s: %w", dir, err))
		}
		if exit.Open && !exit.Door {
			el.Add(fmt.Errorf("exit %s: only doors can be open", dir))
		}
	}

	return el.Err()
}

// Describable holds the naming fields shared by items and NPCs.
type Describable struct {
	// Name is used in messages and for targeting (e.g. "rusty sword")
	Name string `json:"name"`

	// Article goes before the name when it is not the first mention (e.g. "a")
	Article string `json:"article,omitempty"`

	// Aliases are additional keywords players can target this by
	Aliases []string `json:"aliases,omitempty"`

	// Description is shown when a player looks at it
	Description string `json:"description,omitempty"`
}

func (d Describable) validate() error {
	el := errors.NewErrorList()
	if d.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	for _, a := range d.Aliases {
		if a != strings.ToLower(a) {
			el.Add(fmt.Errorf("alias %q must be lowercase", a))
		}
	}
	return el.Err()
}

func (d Describable) description(pronouns game.Pronouns) game.Description {
	return game.Description{
		Name:     d.Name,
		Article:  d.Article,
		Aliases:  d.Aliases,
		Pronouns: pronouns,
		Long:     d.Description,
	}
}

type WearableSpec struct {
	Thickness float64  `json:"thickness"`
	BodyParts []string `json:"body_parts"`
}

type WeaponSpec struct {
	Type      string `json:"type"`
	MinDamage int    `json:"min_damage"`
	MaxDamage int    `json:"max_damage"`
	HitVerb   string `json:"hit_verb"`
}

func (w *WeaponSpec) validate() error {
	el := errors.NewErrorList()
	if w.Type == "" {
		el.Add(fmt.Errorf("weapon type is required"))
	}
	if w.MinDamage < 0 || w.MaxDamage < w.MinDamage {
		el.Add(fmt.Errorf("weapon damage %d-%d is invalid", w.MinDamage, w.MaxDamage))
	}
	if w.HitVerb == "" {
		el.Add(fmt.Errorf("weapon hit verb is required"))
	}
	return el.Err()
}

func (w *WeaponSpec) component() game.Weapon {
	return game.Weapon{
		Type:      game.WeaponType(w.Type),
		MinDamage: w.MinDamage,
		MaxDamage: w.MaxDamage,
		HitVerb:   w.HitVerb,
	}
}

type ContainerSpec struct {
	MaxVolume float64 `json:"max_volume,omitempty"`
	MaxWeight float64 `json:"max_weight,omitempty"`
}

type FluidSpec struct {
	Capacity float64            `json:"capacity"`
	Contents map[string]float64 `json:"contents,omitempty"`
}

// ItemSpec defines a kind of item. Every spawn is a fresh copy.
type ItemSpec struct {
	Describable

	// Room, when set, places one copy there at startup
	Room storage.Ref[*RoomSpec] `json:"room"`

	// Fixed items cannot be picked up
	Fixed bool `json:"fixed,omitempty"`
	Hands int  `json:"hands,omitempty"`

	Weight   float64 `json:"weight,omitempty"`
	Volume   float64 `json:"volume,omitempty"`
	Calories int     `json:"calories,omitempty"`

	Wearable  *WearableSpec  `json:"wearable,omitempty"`
	Weapon    *WeaponSpec    `json:"weapon,omitempty"`
	Container *ContainerSpec `json:"container,omitempty"`
	Fluid     *FluidSpec     `json:"fluid,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (i *ItemSpec) Validate() error {
	el := errors.NewErrorList()
	el.Add(i.validate())

	if i.Hands < 0 || i.Hands > 2 {
		el.Add(fmt.Errorf("hands must be 1 or 2"))
	}
	if i.Weight < 0 || i.Volume < 0 || i.Calories < 0 {
		el.Add(fmt.Errorf("weight, volume and calories cannot be negative"))
	}
	if i.Wearable != nil && len(i.Wearable.BodyParts) == 0 {
		el.Add(fmt.Errorf("wearable items must cover a body part"))
	}
	if i.Weapon != nil {
		el.Add(i.Weapon.validate())
	}
	if i.Fluid != nil {
		total := 0.0
		for fluid, v := range i.Fluid.Contents {
			if v <= 0 {
				el.Add(fmt.Errorf("fluid %s must have a positive volume", fluid))
			}
			total += v
		}
		if total > i.Fluid.Capacity {
			el.Add(fmt.Errorf("fluid contents %.2f exceed capacity %.2f", total, i.Fluid.Capacity))
		}
	}

	return el.Err()
}

// NpcSpec defines a non-player creature.
type NpcSpec struct {
	Describable

	Room     storage.Ref[*RoomSpec] `json:"room"`
	Pronouns string                 `json:"pronouns,omitempty"`
	Health   float64                `json:"health,omitempty"`

	// Inventory is the NPC's starting inventory
	Inventory []storage.Ref[*ItemSpec] `json:"inventory,omitempty"`

	// Weapon is an innate attack used when nothing better is carried
	Weapon *WeaponSpec `json:"weapon,omitempty"`

	Wander      float64 `json:"wander,omitempty"` // chance per tick of moving
	SelfDefense bool    `json:"self_defense,omitempty"`
	Greeting    string  `json:"greeting,omitempty"`
}

var pronounSets = map[string]game.Pronouns{
	"":     game.PronounsIt,
	"it":   game.PronounsIt,
	"they": game.PronounsThey,
	"he":   game.PronounsHe,
	"she":  game.PronounsShe,
}

// Validate satisfies storage.ValidatingSpec.
func (n *NpcSpec) Validate() error {
	el := errors.NewErrorList()
	el.Add(n.validate())

	el.Add(n.Room.Validate())
	if _, ok := pronounSets[n.Pronouns]; !ok {
		el.Add(fmt.Errorf("pronouns %q are not known", n.Pronouns))
	}
	if n.Health < 0 {
		el.Add(fmt.Errorf("health cannot be negative"))
	}
	if n.Wander < 0 || n.Wander > 1 {
		el.Add(fmt.Errorf("wander must be between 0 and 1"))
	}
	for i, ref := range n.Inventory {
		if err := ref.Validate(); err != nil {
			el.Add(fmt.Errorf("inventory %d: %w", i, err))
		}
	}
	if n.Weapon != nil {
		el.Add(n.Weapon.validate())
	}

	return el.Err()
}
