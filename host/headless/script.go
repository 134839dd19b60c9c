// Package headless replays scripted pointer input against a World without a
// window, an audio device or real assets.
package headless

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/plus3/ebeclick/game"
)

// ErrScript is matched by every script validation failure.
var ErrScript = errors.New("invalid script")

// Script is a replay: how many frames to run, the seed, and the clicks.
type Script struct {
	Seed   uint64  `yaml:"seed"`
	Frames int     `yaml:"frames"`
	Clicks []Click `yaml:"clicks"`
}

// Click presses buttons at window position X, Y on a frame, counted from 1.
// Outside makes the pointer position unknown for that frame.
type Click struct {
	Frame   int      `yaml:"frame"`
	X       float32  `yaml:"x"`
	Y       float32  `yaml:"y"`
	Buttons []string `yaml:"buttons"`
	Outside bool     `yaml:"outside"`
}

var buttonNames = map[string]game.Button{
	"left":   game.ButtonLeft,
	"right":  game.ButtonRight,
	"middle": game.ButtonMiddle,
}

// LoadScript reads and validates the script at path.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open script")
	}
	defer func() { _ = f.Close() }()

	s, err := ParseScript(f)
	return s, errors.WithMessage(err, path)
}

// ParseScript decodes and validates a YAML script.
func ParseScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(ErrScript, err.Error())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) Validate() error {
	if s.Frames < 1 {
		return errors.Wrapf(ErrScript, "frames must be positive, got %d", s.Frames)
	}
	for i, c := range s.Clicks {
		if c.Frame < 1 || c.Frame > s.Frames {
			return errors.Wrapf(ErrScript, "click %d: frame %d outside 1..%d", i, c.Frame, s.Frames)
		}
		if len(c.Buttons) == 0 {
			return errors.Wrapf(ErrScript, "click %d: no buttons", i)
		}
		if _, err := c.ButtonSet(); err != nil {
			return errors.Wrapf(err, "click %d", i)
		}
	}
	return nil
}

// ButtonSet resolves the button names of c.
func (c Click) ButtonSet() (game.ButtonSet, error) {
	var set game.ButtonSet
	for _, name := range c.Buttons {
		b, ok := buttonNames[name]
		if !ok {
			return 0, errors.Wrapf(ErrScript, "unknown button %q", name)
		}
		set = set.With(b)
	}
	return set, nil
}

// pointerStates turns the clicks into one PointerState per frame that has any.
// Clicks on the same frame merge their buttons; the last position wins.
func (s *Script) pointerStates() map[int]game.PointerState {
	states := make(map[int]game.PointerState, len(s.Clicks))
	for _, c := range s.Clicks {
		set, _ := c.ButtonSet()
		p := states[c.Frame]
		p.X, p.Y = c.X, c.Y
		p.Inside = !c.Outside
		p.Width, p.Height = game.SceneWidth, game.SceneHeight
		p.JustPressed |= set
		states[c.Frame] = p
	}
	return states
}
