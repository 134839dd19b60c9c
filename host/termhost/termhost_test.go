package termhost

import (
	"testing"
	"testing/fstest"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ebeclick/ecs"
	"github.com/plus3/ebeclick/game"
)

func gameFiles() fstest.MapFS {
	files := fstest.MapFS{}
	for _, name := range []string{
		game.PlayerSprite, game.ChickenSprite, game.ChickenSound, game.DogSprite, game.DogSound,
	} {
		files[name] = &fstest.MapFile{Data: []byte(name)}
	}
	return files
}

func newTestHost(t *testing.T) (*Host, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	h, err := New(Options{Screen: screen, Assets: gameFiles(), Seed: 1, Mute: true})
	require.NoError(t, err)
	t.Cleanup(h.Close)

	screen.SetSize(64, 32)
	h.pointer.resize(64, 32)
	return h, screen
}

func TestPointerSample(t *testing.T) {
	p := &pointer{}
	p.resize(64, 32)

	state := p.Sample()
	assert.False(t, state.Inside, "no mouse event yet")

	p.handle(tcell.NewEventMouse(32, 16, tcell.ButtonNone, tcell.ModNone))
	state = p.Sample()
	require.True(t, state.Inside)
	assert.Equal(t, float32(130), state.X)
	assert.Equal(t, float32(132), state.Y)
	assert.Zero(t, state.JustPressed)
}

func TestPointerReportsPressEdgesOnce(t *testing.T) {
	p := &pointer{}
	p.resize(64, 32)

	p.handle(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	p.handle(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone))
	p.handle(tcell.NewEventMouse(1, 0, tcell.Button1|tcell.Button2, tcell.ModNone))

	state := p.Sample()
	assert.Equal(t, game.Buttons(game.ButtonLeft, game.ButtonRight), state.JustPressed)

	p.handle(tcell.NewEventMouse(1, 0, tcell.Button1|tcell.Button2, tcell.ModNone))
	assert.Zero(t, p.Sample().JustPressed, "held buttons are not new presses")

	p.handle(tcell.NewEventMouse(1, 0, tcell.ButtonNone, tcell.ModNone))
	p.handle(tcell.NewEventMouse(1, 0, tcell.Button3, tcell.ModNone))
	assert.Equal(t, game.Buttons(game.ButtonMiddle), p.Sample().JustPressed)
}

func TestSceneToCell(t *testing.T) {
	cx, cy, ok := sceneToCell(0, 0, 64, 32)
	require.True(t, ok)
	assert.Equal(t, 32, cx)
	assert.Equal(t, 16, cy)

	cx, cy, ok = sceneToCell(-128, -128, 64, 32)
	require.True(t, ok)
	assert.Zero(t, cx)
	assert.Zero(t, cy)

	_, _, ok = sceneToCell(128, 0, 64, 32)
	assert.False(t, ok)
	_, _, ok = sceneToCell(0, -200, 64, 32)
	assert.False(t, ok)
}

func TestHostDrawsPlayerAtCentre(t *testing.T) {
	h, screen := newTestHost(t)

	h.draw()

	r, _, _, _ := screen.GetContent(32, 16)
	assert.Equal(t, '@', r)
	r, _, _, _ = screen.GetContent(0, 0)
	assert.Equal(t, ' ', r)
}

func TestHostClickSpawnsProjectile(t *testing.T) {
	h, screen := newTestHost(t)

	require.True(t, h.handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone)))
	h.world.Step()
	h.draw()

	assert.Equal(t, 1, h.world.Projectiles())

	found := false
	for e := range ecs.NewView[struct {
		*game.Transform
		*game.Critter
	}](h.world.Storage).Values() {
		cx, cy, ok := sceneToCell(e.Transform.X, e.Transform.Y, 64, 32)
		require.True(t, ok)
		r, _, _, _ := screen.GetContent(cx, cy)
		assert.Contains(t, []rune{'c', 'd'}, r)
		found = true
	}
	assert.True(t, found)
}

func TestHostQuitKeys(t *testing.T) {
	h, _ := newTestHost(t)

	assert.True(t, h.handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
	assert.False(t, h.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestNewFailsOnMissingAsset(t *testing.T) {
	files := gameFiles()
	delete(files, game.DogSound)

	_, err := New(Options{Screen: tcell.NewSimulationScreen("UTF-8"), Assets: files, Mute: true})
	assert.Error(t, err)
}
