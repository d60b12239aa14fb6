package game

import (
	"fmt"
	"strings"
)

// Direction is a compass or vertical heading between rooms.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	Up
	Down
)

type directionNames struct {
	short string
	long  string
}

var directions = []directionNames{
	North:     {"n", "north"},
	NorthEast: {"ne", "northeast"},
	East:      {"e", "east"},
	SouthEast: {"se", "southeast"},
	South:     {"s", "south"},
	SouthWest: {"sw", "southwest"},
	West:      {"w", "west"},
	NorthWest: {"nw", "northwest"},
	Up:        {"u", "up"},
	Down:      {"d", "down"},
}

// AllDirections lists every direction in canonical display order.
func AllDirections() []Direction {
	return []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest, Up, Down}
}

// ParseDirection accepts the short or long name of a direction, ignoring case.
func ParseDirection(s string) (Direction, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, n := range directions {
		if s == n.short || s == n.long {
			return Direction(d), true
		}
	}
	return 0, false
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directions) {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directions[d].long
}

func (d Direction) Short() string {
	return directions[d].short
}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case NorthEast:
		return SouthWest
	case East:
		return West
	case SouthEast:
		return NorthWest
	case South:
		return North
	case SouthWest:
		return NorthEast
	case West:
		return East
	case NorthWest:
		return SouthEast
	case Up:
		return Down
	default:
		return Up
	}
}

// Offset is the map displacement of one step in d. Vertical moves have no offset.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	case West:
		return -1, 0
	case NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, ok := ParseDirection(string(text))
	if !ok {
		return fmt.Errorf("unknown direction: %s", text)
	}
	*d = parsed
	return nil
}
