package game

import "github.com/plus3/ebeclick/ecs"

// Button identifies a pointer button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// ButtonSet is a set of buttons.
type ButtonSet uint8

// Buttons builds a set from its members.
func Buttons(bs ...Button) ButtonSet {
	var set ButtonSet
	for _, b := range bs {
		set = set.With(b)
	}
	return set
}

// DefaultTriggers are the buttons that spawn a projectile.
var DefaultTriggers = Buttons(ButtonLeft, ButtonRight)

func (s ButtonSet) With(b Button) ButtonSet { return s | 1<<b }
func (s ButtonSet) Has(b Button) bool       { return s&(1<<b) != 0 }

// Any reports whether s and other share a button.
func (s ButtonSet) Any(other ButtonSet) bool { return s&other != 0 }

// PointerState is what the host reports about the pointer for one frame.
// X and Y are window pixels with the origin at the top-left corner.
type PointerState struct {
	X, Y   float32
	Inside bool

	Width, Height float32

	// JustPressed holds the buttons that went down since the previous frame.
	JustPressed ButtonSet
}

// ScenePosition converts the pointer to scene coordinates, origin at the
// window centre. An unknown position maps to the origin.
func (p PointerState) ScenePosition() (float32, float32) {
	if !p.Inside {
		return 0, 0
	}
	return p.X - p.Width/2, p.Y - p.Height/2
}

// InputSource is sampled once at the start of every frame.
type InputSource interface {
	Sample() PointerState
}

// InputFunc adapts a function to InputSource.
type InputFunc func() PointerState

func (f InputFunc) Sample() PointerState { return f() }

// InputSystem publishes the sampled pointer state for the rest of the frame.
type InputSystem struct {
	Pointer ecs.Singleton[PointerState]
	Source  InputSource
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Pointer.Get()
	if s.Source == nil {
		*state = PointerState{}
		return
	}
	*state = s.Source.Sample()
}
