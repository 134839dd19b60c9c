package game

import "github.com/plus3/ebeclick/assets"

// AudioSink plays a sound, fire and forget.
type AudioSink interface {
	Play(sound assets.Handle)
}

// SpriteSink receives every sprite of a frame, lowest depth first.
type SpriteSink interface {
	Place(image assets.Handle, x, y, depth float32)
}

// AudioFunc adapts a function to AudioSink.
type AudioFunc func(sound assets.Handle)

func (f AudioFunc) Play(sound assets.Handle) { f(sound) }

type silentAudio struct{}

func (silentAudio) Play(assets.Handle) {}

// Silent is an AudioSink that drops every sound.
var Silent AudioSink = silentAudio{}
