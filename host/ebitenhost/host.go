// Package ebitenhost runs the game in a window: ebiten drives the frame clock,
// reads the mouse, draws the sprites and plays the sounds.
package ebitenhost

import (
	"fmt"
	"io/fs"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/ecs/debugui"
	debugui_ebiten "github.com/plus3/ebeclick/ecs/debugui/ebiten"
	"github.com/plus3/ebeclick/game"
)

type Options struct {
	Title  string
	Scale  int
	Assets fs.FS
	Seed   uint64
	// DebugUI shows the ImGui stats windows over the scene.
	DebugUI bool
	Logger  *zerolog.Logger
}

// Host implements ebiten.Game around a game.World.
type Host struct {
	world   *game.World
	sprites *spriteSink
	imgui   *debugui_ebiten.ImguiBackend
	log     zerolog.Logger
	opts    Options
}

// New loads the assets, builds the world and configures the window.
func New(opts Options) (*Host, error) {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	sounds := &audioSink{context: audio.NewContext(sampleRate)}
	catalog := assets.NewCatalog(&assets.FSLoader{
		FS:     opts.Assets,
		Images: decodeImage,
		Sounds: sounds.decoder(),
	})
	sounds.catalog = catalog

	h := &Host{
		sprites: &spriteSink{catalog: catalog},
		log:     log,
		opts:    opts,
	}
	input := &mouseInput{}

	world, err := game.NewWorld(game.Options{
		Catalog: catalog,
		Input:   input,
		Audio:   sounds,
		Sprites: h.sprites,
		Seed:    opts.Seed,
		Logger:  &log,
	})
	if err != nil {
		return nil, err
	}
	h.world = world

	ebiten.SetWindowSize(game.SceneWidth*opts.Scale, game.SceneHeight*opts.Scale)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(game.FramesPerSecond)

	if opts.DebugUI {
		h.imgui = debugui_ebiten.NewImguiBackend(opts.Title, game.SceneWidth*opts.Scale, game.SceneHeight*opts.Scale)
		h.imgui.Attach(world.Storage, world.Update)
		input.captured = h.mouseCaptured
		debugui.SpawnDebugUI(world.Storage,
			debugui.NamedScheduler{Name: "Update", Scheduler: world.Update},
			debugui.NamedScheduler{Name: "Render", Scheduler: world.Render},
		)
		world.Storage.Spawn(debugui.ImguiItem{Render: h.renderCounters})
	}

	return h, nil
}

func (h *Host) mouseCaptured() bool {
	var state *debugui.ImguiInputState
	return h.world.Storage.ReadSingleton(&state) && state.WantCaptureMouse
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func (h *Host) Run() error {
	h.log.Info().Str("title", h.opts.Title).Int("scale", h.opts.Scale).Msg("window opening")
	err := ebiten.RunGame(h)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return errors.Wrap(err, "run game")
}

func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if h.imgui != nil {
		h.imgui.Frame(h.world.Step)
		return nil
	}
	h.world.Step()
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)

	h.sprites.screen = screen
	h.world.Draw()
	h.sprites.screen = nil

	if h.imgui != nil {
		h.imgui.Overlay(screen)
	}
}

func (h *Host) Layout(_, _ int) (int, int) {
	if h.imgui != nil {
		h.imgui.Layout(game.SceneWidth, game.SceneHeight)
	}
	return game.SceneWidth, game.SceneHeight
}

func (h *Host) renderCounters() {
	if !imgui.BeginV("Projectiles", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	c := h.world.Counters()
	imgui.Text(fmt.Sprintf("Spawned: %d", c.Spawned))
	imgui.Text(fmt.Sprintf("  chickens: %d", c.ByKind[game.KindChicken]))
	imgui.Text(fmt.Sprintf("  dogs: %d", c.ByKind[game.KindDog]))
	imgui.Text(fmt.Sprintf("Despawned: %d", c.Despawned))
	imgui.Text(fmt.Sprintf("Live: %d", c.Live()))

	imgui.End()
}
