package display

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-mudengine/internal/game"
)

const ansiReset = "\x1b[0m"

var ansiForeground = map[game.Color]int{
	game.Black:       30,
	game.DarkRed:     31,
	game.DarkGreen:   32,
	game.DarkYellow:  33,
	game.DarkBlue:    34,
	game.DarkMagenta: 35,
	game.DarkCyan:    36,
	game.Gray:        37,
	game.DarkGray:    90,
	game.Red:         91,
	game.Green:       92,
	game.Yellow:      93,
	game.Blue:        94,
	game.Magenta:     95,
	game.Cyan:        96,
	game.White:       97,
}

// colorize wraps s in the escape codes for fg on bg.
func colorize(s string, fg, bg game.Color) string {
	return fmt.Sprintf("\x1b[%d;%dm%s%s", ansiForeground[fg], ansiForeground[bg]+10, s, ansiReset)
}

// renderMap draws each tile of m, coloring runs of characters that share colors.
func renderMap(m game.MapDescription) string {
	var sb strings.Builder
	for y, row := range m.Tiles {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, icon := range row {
			for _, c := range icon {
				sb.WriteString(colorize(string(c.Char), c.Foreground, c.Background))
			}
		}
	}
	return sb.String()
}
