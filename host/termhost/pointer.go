package termhost

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/ebeclick/game"
)

var buttonMap = []struct {
	mask   tcell.ButtonMask
	button game.Button
}{
	{tcell.Button1, game.ButtonLeft},
	{tcell.Button2, game.ButtonRight},
	{tcell.Button3, game.ButtonMiddle},
}

// pointer folds tcell mouse events into one PointerState per frame. A cell
// stands for the scene pixels it covers; the pointer sits in its middle.
type pointer struct {
	cols, rows int

	seen   bool
	cx, cy int
	held   tcell.ButtonMask
	edges  game.ButtonSet
}

func (p *pointer) resize(cols, rows int) {
	p.cols, p.rows = cols, rows
}

func (p *pointer) handle(ev *tcell.EventMouse) {
	p.seen = true
	p.cx, p.cy = ev.Position()

	mask := ev.Buttons()
	pressed := mask &^ p.held
	p.held = mask

	for _, m := range buttonMap {
		if pressed&m.mask != 0 {
			p.edges = p.edges.With(m.button)
		}
	}
}

// Sample returns the pointer for the frame about to run and clears the
// presses collected since the previous one.
func (p *pointer) Sample() game.PointerState {
	state := game.PointerState{
		Width:       game.SceneWidth,
		Height:      game.SceneHeight,
		JustPressed: p.edges,
	}
	p.edges = 0

	if !p.seen || p.cols <= 0 || p.rows <= 0 {
		return state
	}
	if p.cx < 0 || p.cy < 0 || p.cx >= p.cols || p.cy >= p.rows {
		return state
	}

	state.Inside = true
	state.X = (float32(p.cx) + 0.5) * game.SceneWidth / float32(p.cols)
	state.Y = (float32(p.cy) + 0.5) * game.SceneHeight / float32(p.rows)
	return state
}
