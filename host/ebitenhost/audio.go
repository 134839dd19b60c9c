package ebitenhost

import (
	"io"
	"slices"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/pkg/errors"

	"github.com/plus3/ebeclick/assets"
)

const sampleRate = 44100

// audioSink plays decoded wav files. Each Play gets its own player so the
// same sound can overlap itself.
type audioSink struct {
	context *audio.Context
	catalog *assets.Catalog
	playing []*audio.Player
}

// decoder returns the asset decoder for sounds. It resamples to the
// context's rate and keeps the PCM bytes in memory.
func (a *audioSink) decoder() assets.Decoder {
	return func(_ string, r io.Reader) (any, error) {
		stream, err := wav.DecodeWithSampleRate(sampleRate, r)
		if err != nil {
			return nil, errors.Wrap(err, "wav")
		}
		pcm, err := io.ReadAll(stream)
		if err != nil {
			return nil, errors.Wrap(err, "read pcm")
		}
		return pcm, nil
	}
}

func (a *audioSink) Play(sound assets.Handle) {
	pcm, ok := assets.Resource[[]byte](a.catalog, sound)
	if !ok {
		return
	}

	a.playing = slices.DeleteFunc(a.playing, func(p *audio.Player) bool {
		if p.IsPlaying() {
			return false
		}
		_ = p.Close()
		return true
	})

	player := a.context.NewPlayerFromBytes(pcm)
	player.Play()
	a.playing = append(a.playing, player)
}
