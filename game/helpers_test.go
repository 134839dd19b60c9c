package game_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/ecs"
	"github.com/plus3/ebeclick/game"
)

// scriptedRand replays a fixed sequence of draws, then repeats the last one.
type scriptedRand struct {
	values []float32
	next   int
}

func (r *scriptedRand) Float32() float32 {
	if r.next >= len(r.values) {
		return r.values[len(r.values)-1]
	}
	v := r.values[r.next]
	r.next++
	return v
}

func draws(values ...float32) *scriptedRand {
	return &scriptedRand{values: values}
}

type recordedAudio struct {
	played []assets.Handle
}

func (a *recordedAudio) Play(h assets.Handle) {
	a.played = append(a.played, h)
}

type placed struct {
	image   assets.Handle
	x, y, z float32
}

type recordedSprites struct {
	placed []placed
}

func (s *recordedSprites) Place(h assets.Handle, x, y, z float32) {
	s.placed = append(s.placed, placed{h, x, y, z})
}

// pointerQueue serves one PointerState per frame, then idle frames.
type pointerQueue struct {
	frames []game.PointerState
}

func (q *pointerQueue) Sample() game.PointerState {
	if len(q.frames) == 0 {
		return game.PointerState{Width: game.SceneWidth, Height: game.SceneHeight}
	}
	p := q.frames[0]
	q.frames = q.frames[1:]
	return p
}

func (q *pointerQueue) push(p game.PointerState) {
	q.frames = append(q.frames, p)
}

func click(x, y float32, buttons ...game.Button) game.PointerState {
	return game.PointerState{
		X: x, Y: y, Inside: true,
		Width: game.SceneWidth, Height: game.SceneHeight,
		JustPressed: game.Buttons(buttons...),
	}
}

type harness struct {
	world   *game.World
	input   *pointerQueue
	audio   *recordedAudio
	sprites *recordedSprites
}

func newHarness(t *testing.T, rng game.Rand) *harness {
	t.Helper()

	h := &harness{
		input:   &pointerQueue{},
		audio:   &recordedAudio{},
		sprites: &recordedSprites{},
	}
	world, err := game.NewWorld(game.Options{
		Catalog: assets.NewCatalog(assets.NameLoader),
		Input:   h.input,
		Audio:   h.audio,
		Sprites: h.sprites,
		Rand:    rng,
	})
	require.NoError(t, err)
	h.world = world
	return h
}

type projectile struct {
	ecs.EntityId
	*game.Transform
	*game.Moveable
	*game.Critter
	*game.Sprite
}

func projectiles(storage *ecs.Storage) []projectile {
	var out []projectile
	for p := range ecs.NewView[projectile](storage).Values() {
		out = append(out, p)
	}
	return out
}

// newMotionScheduler runs the motion system alone against a fresh storage.
func newMotionScheduler() (*ecs.Storage, *ecs.Scheduler) {
	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[game.Counters](storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&game.MotionSystem{})
	return storage, scheduler
}
