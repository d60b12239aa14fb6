package game

import (
	"github.com/pixil98/go-mudengine/internal/ecs"
)

// CharsPerTile is the width of one map tile in characters.
const CharsPerTile = 3

type Color int

const (
	Black Color = iota
	DarkGray
	Red
	DarkRed
	Green
	DarkGreen
	Yellow
	DarkYellow
	Blue
	DarkBlue
	Magenta
	DarkMagenta
	Cyan
	DarkCyan
	White
	Gray
)

type MapChar struct {
	Char       rune  `json:"char"`
	Background Color `json:"bg"`
	Foreground Color `json:"fg"`
}

type MapIcon [CharsPerTile]MapChar

// NewMapIcon builds an icon from a three-character string in one color pair.
func NewMapIcon(s string, fg, bg Color) MapIcon {
	var icon MapIcon
	runes := []rune(s)
	for i := range icon {
		c := ' '
		if i < len(runes) {
			c = runes[i]
		}
		icon[i] = MapChar{Char: c, Foreground: fg, Background: bg}
	}
	return icon
}

var (
	BlankMapIcon    = NewMapIcon(" ..", DarkGray, Black)
	PlayerMapIcon   = NewMapIcon(" ()", Cyan, Black)
	DefaultRoomIcon = NewMapIcon("[ ]", White, Black)
)

// MapDescription is a Size×Size grid of icons centered on the viewer.
type MapDescription struct {
	Size  int         `json:"size"`
	Tiles [][]MapIcon `json:"tiles"`
}

func (MapDescription) Kind() string { return "map" }

// MapFor builds a map of edge length size centered on the room containing e.
// Size is forced odd so the viewer sits on the center tile.
func MapFor(w *ecs.World, e ecs.Entity, size int) MapDescription {
	if size%2 == 0 {
		size++
	}
	desc := MapDescription{Size: size, Tiles: make([][]MapIcon, size)}
	for y := range desc.Tiles {
		desc.Tiles[y] = make([]MapIcon, size)
		for x := range desc.Tiles[y] {
			desc.Tiles[y][x] = BlankMapIcon
		}
	}

	room, ok := RoomOf(w, e)
	if !ok {
		return desc
	}
	center, ok := ecs.Get[Coordinates](w, room)
	if !ok {
		desc.Tiles[size/2][size/2] = PlayerMapIcon
		return desc
	}

	gm, _ := ecs.Resource[GameMap](w)
	half := size / 2
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			if gm == nil {
				continue
			}
			at := Coordinates{X: center.X + dx, Y: center.Y + dy, Z: center.Z}
			if r, ok := gm.Rooms[at]; ok {
				icon := DefaultRoomIcon
				if rm, ok := ecs.Get[Room](w, r); ok && rm.MapIcon != (MapIcon{}) {
					icon = rm.MapIcon
				}
				desc.Tiles[dy+half][dx+half] = icon
			}
		}
	}
	desc.Tiles[half][half] = PlayerMapIcon
	return desc
}

// PlaceRooms assigns Coordinates to every room reachable from origin, which
// sits at (0, 0, 0), and indexes them in the GameMap. Rooms that already have
// coordinates keep them. When two rooms land on the same spot the first one
// reached is shown on the map.
func PlaceRooms(w *ecs.World, origin ecs.Entity) {
	gm, ok := ecs.Resource[GameMap](w)
	if !ok {
		ecs.InsertResource(w, GameMap{Rooms: map[Coordinates]ecs.Entity{}})
		gm = ecs.MustResource[GameMap](w)
	}

	if !ecs.Has[Coordinates](w, origin) {
		ecs.Attach(w, origin, Coordinates{})
	}
	queue := []ecs.Entity{origin}
	seen := map[ecs.Entity]bool{origin: true}
	for len(queue) > 0 {
		room := queue[0]
		queue = queue[1:]
		at := *ecs.MustGet[Coordinates](w, room)
		if _, taken := gm.Rooms[at]; !taken {
			gm.Rooms[at] = room
		}

		for _, d := range AllDirections() {
			_, conn, ok := ConnectionIn(w, room, d)
			if !ok || seen[conn.Destination] {
				continue
			}
			seen[conn.Destination] = true
			if !ecs.Has[Coordinates](w, conn.Destination) {
				next := at
				dx, dy := d.Offset()
				next.X += dx
				next.Y += dy
				switch d {
				case Up:
					next.Z++
				case Down:
					next.Z--
				}
				ecs.Attach(w, conn.Destination, next)
			}
			queue = append(queue, conn.Destination)
		}
	}
}
