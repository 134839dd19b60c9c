package termhost

import (
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"

	"github.com/plus3/ebeclick/assets"
)

const sampleRate = beep.SampleRate(44100)

// decodeWav reads a whole wav file into memory so it can be replayed any
// number of times.
func decodeWav(_ string, r io.Reader) (any, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "wav")
	}
	defer func() { _ = streamer.Close() }()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return buf, nil
}

// speakerSink plays decoded sounds through the default audio device.
// Without a device every Play is dropped.
type speakerSink struct {
	catalog *assets.Catalog
	ready   bool
}

func (s *speakerSink) init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	s.ready = true
	return nil
}

func (s *speakerSink) Play(sound assets.Handle) {
	if !s.ready {
		return
	}
	buf, ok := assets.Resource[*beep.Buffer](s.catalog, sound)
	if !ok {
		return
	}

	var streamer beep.Streamer = buf.Streamer(0, buf.Len())
	if rate := buf.Format().SampleRate; rate != sampleRate {
		streamer = beep.Resample(4, rate, sampleRate, streamer)
	}
	speaker.Play(streamer)
}

func (s *speakerSink) close() {
	if s.ready {
		speaker.Close()
		s.ready = false
	}
}
