// Package termhost runs the game in a terminal: the screen is the scene, the
// mouse is the pointer and every sprite is drawn as one character cell.
package termhost

import (
	"context"
	"io/fs"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/game"
)

type Options struct {
	// Screen defaults to the terminal tcell finds.
	Screen tcell.Screen
	Assets fs.FS
	Seed   uint64
	// Mute skips the audio device; sounds still have to exist.
	Mute   bool
	Logger *zerolog.Logger
}

type Host struct {
	screen  tcell.Screen
	world   *game.World
	pointer *pointer
	sprites *glyphSink
	audio   *speakerSink
	log     zerolog.Logger
}

// New takes over the terminal, loads the assets and builds the world.
// Close must be called to give the terminal back.
func New(opts Options) (*Host, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, errors.Wrap(err, "open terminal")
		}
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init terminal")
	}
	screen.EnableMouse(tcell.MouseButtonEvents)
	screen.HideCursor()

	loader := &assets.FSLoader{FS: opts.Assets}
	if !opts.Mute {
		loader.Sounds = decodeWav
	}
	catalog := assets.NewCatalog(loader)

	h := &Host{
		screen:  screen,
		pointer: &pointer{},
		sprites: &glyphSink{screen: screen, catalog: catalog},
		audio:   &speakerSink{catalog: catalog},
		log:     log,
	}
	h.pointer.resize(screen.Size())

	if !opts.Mute {
		if err := h.audio.init(); err != nil {
			log.Warn().Err(err).Msg("audio disabled")
		}
	}

	world, err := game.NewWorld(game.Options{
		Catalog: catalog,
		Input:   h.pointer,
		Audio:   h.audio,
		Sprites: h.sprites,
		Seed:    opts.Seed,
		Logger:  &log,
	})
	if err != nil {
		h.Close()
		return nil, err
	}
	h.world = world
	return h, nil
}

// World returns the world the host drives.
func (h *Host) World() *game.World {
	return h.world
}

// Run steps and redraws the world at the frame rate until Escape or Ctrl-C
// is pressed or ctx is cancelled.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(game.FrameInterval)
	defer ticker.Stop()

	h.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handle(ev) {
				h.log.Info().Msg("quit requested")
				return nil
			}
		case <-ticker.C:
			h.world.Step()
			h.draw()
		}
	}
}

// handle applies one terminal event; false means quit.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
	case *tcell.EventMouse:
		h.pointer.handle(ev)
	case *tcell.EventResize:
		h.pointer.resize(ev.Size())
		h.screen.Sync()
	}
	return true
}

func (h *Host) draw() {
	h.sprites.clear()
	h.world.Draw()
	h.screen.Show()
}

// Close restores the terminal and releases the audio device.
func (h *Host) Close() {
	h.audio.close()
	h.screen.Fini()
}
