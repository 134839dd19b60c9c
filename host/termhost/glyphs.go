package termhost

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/game"
)

var background = tcell.StyleDefault.Background(tcell.NewRGBColor(128, 128, 0))

type glyph struct {
	r     rune
	style tcell.Style
}

var glyphsByName = map[string]glyph{
	game.PlayerSprite:  {'@', background.Foreground(tcell.ColorWhite).Bold(true)},
	game.ChickenSprite: {'c', background.Foreground(tcell.ColorYellow)},
	game.DogSprite:     {'d', background.Foreground(tcell.ColorMaroon)},
}

var unknownGlyph = glyph{'?', background.Foreground(tcell.ColorRed)}

// glyphSink draws each sprite as a single cell. Later sprites overwrite
// earlier ones, so higher depths end up on top.
type glyphSink struct {
	screen  tcell.Screen
	catalog *assets.Catalog
}

func (s *glyphSink) clear() {
	s.screen.Fill(' ', background)
}

func (s *glyphSink) Place(image assets.Handle, x, y, _ float32) {
	cols, rows := s.screen.Size()
	cx, cy, ok := sceneToCell(x, y, cols, rows)
	if !ok {
		return
	}

	g, found := glyphsByName[s.catalog.Name(image)]
	if !found {
		g = unknownGlyph
	}
	s.screen.SetContent(cx, cy, g.r, nil, g.style)
}

// sceneToCell maps a scene position to the cell covering it. Positions
// outside the visible scene report false.
func sceneToCell(x, y float32, cols, rows int) (int, int, bool) {
	px := x + game.SceneWidth/2
	py := y + game.SceneHeight/2
	if px < 0 || py < 0 || px >= game.SceneWidth || py >= game.SceneHeight {
		return 0, 0, false
	}
	return int(px * float32(cols) / game.SceneWidth), int(py * float32(rows) / game.SceneHeight), true
}
