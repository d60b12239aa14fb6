package game

import (
	"slices"
	"strings"
	"time"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

// Location records which container an entity is inside.
type Location struct {
	Container ecs.Entity
}

// Container holds other entities. A zero MaxVolume or MaxWeight means unlimited.
type Container struct {
	entities  []ecs.Entity
	MaxVolume float64
	MaxWeight float64
}

// Entities returns the contents in ascending handle order.
func (c *Container) Entities() []ecs.Entity {
	return slices.Clone(c.entities)
}

func (c *Container) Contains(e ecs.Entity) bool {
	_, found := slices.BinarySearch(c.entities, e)
	return found
}

func (c *Container) add(e ecs.Entity) {
	i, found := slices.BinarySearch(c.entities, e)
	if !found {
		c.entities = slices.Insert(c.entities, i, e)
	}
}

func (c *Container) remove(e ecs.Entity) {
	if i, found := slices.BinarySearch(c.entities, e); found {
		c.entities = slices.Delete(c.entities, i, i+1)
	}
}

// Room marks a top-level location. Its members are held by its Container.
type Room struct {
	Name        string
	Description string
	MapIcon     MapIcon
}

// Connection is a portal out of the room it is located in. OtherSide is the
// reverse connection entity in the destination room, zero when OneWay.
type Connection struct {
	Direction   Direction
	Destination ecs.Entity
	OtherSide   ecs.Entity
	OneWay      bool
}

// OpenState gates a connection or container. Both sides of a door share a state
// by being updated together.
type OpenState struct {
	Open bool
}

// Pronouns used when narrating an entity in the third person.
type Pronouns struct {
	Subject    string
	Object     string
	Possessive string
}

var (
	PronounsIt   = Pronouns{Subject: "it", Object: "it", Possessive: "its"}
	PronounsThey = Pronouns{Subject: "they", Object: "them", Possessive: "their"}
	PronounsHe   = Pronouns{Subject: "he", Object: "him", Possessive: "his"}
	PronounsShe  = Pronouns{Subject: "she", Object: "her", Possessive: "her"}
)

// Description names an entity for parsing and display. Aliases are lowercase.
type Description struct {
	Name     string
	RoomName string
	Article  string
	Aliases  []string
	Pronouns Pronouns
	Long     string
}

// Matches reports whether input refers to this description, ignoring case.
func (d *Description) Matches(input string) bool {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return false
	}
	if input == strings.ToLower(d.Name) || (d.RoomName != "" && input == strings.ToLower(d.RoomName)) {
		return true
	}
	return slices.Contains(d.Aliases, input)
}

// Definite is the name with "the" when the entity takes an article.
func (d *Description) Definite() string {
	if d.Article == "" {
		return d.Name
	}
	return "the " + d.Name
}

// Indefinite is the name with its own article, if any.
func (d *Description) Indefinite() string {
	if d.Article == "" {
		return d.Name
	}
	return d.Article + " " + d.Name
}

// Living marks an entity that is described as a creature rather than an object.
type Living struct{}

// SpawnRoom marks the room new players appear in.
type SpawnRoom struct{}

// Coordinates places a room on the world map.
type Coordinates struct {
	X, Y, Z int
}

// Player marks an entity driven by a connected person.
type Player struct {
	LastInput time.Time
}

// ClientGone marks a player whose connection closed. Its actions are
// interrupted and it is removed once its queue is empty.
type ClientGone struct{}

// CustomInputParser adds parsers that apply when this entity is perceived.
type CustomInputParser struct {
	Parsers []InputParser
}

// Name returns the definite name of e, or "something" if it has no description.
func Name(w *ecs.World, e ecs.Entity) string {
	if d, ok := ecs.Get[Description](w, e); ok {
		return d.Definite()
	}
	if r, ok := ecs.Get[Room](w, e); ok {
		return r.Name
	}
	return "something"
}
