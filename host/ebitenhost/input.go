package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/ebeclick/game"
)

var mouseButtons = []struct {
	ebiten ebiten.MouseButton
	button game.Button
}{
	{ebiten.MouseButtonLeft, game.ButtonLeft},
	{ebiten.MouseButtonRight, game.ButtonRight},
	{ebiten.MouseButtonMiddle, game.ButtonMiddle},
}

// mouseInput samples the ebiten cursor in screen coordinates, which Layout
// makes equal to scene pixels.
type mouseInput struct {
	// captured reports whether the debug overlay owns the mouse this frame.
	captured func() bool
}

func (m *mouseInput) Sample() game.PointerState {
	var pressed game.ButtonSet
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			pressed = pressed.With(b.button)
		}
	}

	x, y := ebiten.CursorPosition()
	captured := m.captured != nil && m.captured()
	return pointerAt(x, y, pressed, captured)
}

// pointerAt builds the PointerState for a cursor at screen position x, y.
// Presses the overlay captured never reach the game.
func pointerAt(x, y int, pressed game.ButtonSet, captured bool) game.PointerState {
	state := game.PointerState{
		X:      float32(x),
		Y:      float32(y),
		Width:  game.SceneWidth,
		Height: game.SceneHeight,
		Inside: x >= 0 && y >= 0 && x < game.SceneWidth && y < game.SceneHeight,
	}
	if !captured {
		state.JustPressed = pressed
	}
	return state
}
