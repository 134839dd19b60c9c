package headless

import (
	"cmp"
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/ecs"
	"github.com/plus3/ebeclick/game"
)

// Runner replays a Script frame by frame as fast as possible.
type Runner struct {
	Script *Script

	// Catalog defaults to one that resolves every asset to its name.
	Catalog *assets.Catalog
	Logger  *zerolog.Logger
}

type scriptedInput struct {
	states map[int]game.PointerState
	frame  int
}

func (in *scriptedInput) Sample() game.PointerState {
	in.frame++
	if p, ok := in.states[in.frame]; ok {
		return p
	}
	return game.PointerState{Width: game.SceneWidth, Height: game.SceneHeight}
}

type soundLog struct {
	catalog *assets.Catalog
	played  map[string]int
}

func (s *soundLog) Play(h assets.Handle) {
	s.played[s.catalog.Name(h)]++
}

type spriteCount struct {
	last int
	n    int
}

func (s *spriteCount) Place(assets.Handle, float32, float32, float32) {
	s.n++
}

func (s *spriteCount) endFrame() {
	s.last, s.n = s.n, 0
}

// Run steps the world once per scripted frame and reports what happened.
// It stops early with the context's error when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r.Script == nil {
		return nil, errors.Wrap(ErrScript, "no script")
	}

	catalog := r.Catalog
	if catalog == nil {
		catalog = assets.NewCatalog(assets.NameLoader)
	}

	seed := r.Script.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	sounds := &soundLog{catalog: catalog, played: make(map[string]int)}
	sprites := &spriteCount{}
	world, err := game.NewWorld(game.Options{
		Catalog: catalog,
		Input:   &scriptedInput{states: r.Script.pointerStates()},
		Audio:   sounds,
		Sprites: sprites,
		Seed:    seed,
		Logger:  r.Logger,
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	for frame := 1; frame <= r.Script.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "replay stopped at frame %d", frame)
		}
		world.Step()
		world.Draw()
		sprites.endFrame()
	}

	counters := world.Counters()
	report := &Report{
		Seed:       seed,
		Frames:     r.Script.Frames,
		Clicks:     len(r.Script.Clicks),
		Elapsed:    time.Since(start),
		Spawned:    counters.Spawned,
		Despawned:  counters.Despawned,
		Chickens:   counters.ByKind[game.KindChicken],
		Dogs:       counters.ByKind[game.KindDog],
		Sounds:     sounds.played,
		Sprites:    sprites.last,
		Storage:    world.Storage.CollectStats(),
		Scheduler:  world.Update.GetStats(),
		PlayerLive: world.Storage.Alive(world.Player),
	}

	for e := range ecs.NewView[struct {
		*game.Transform
		*game.Critter
	}](world.Storage).Values() {
		report.Projectiles = append(report.Projectiles, Projectile{
			Kind: e.Critter.Kind.String(),
			X:    e.Transform.X,
			Y:    e.Transform.Y,
		})
	}
	slices.SortFunc(report.Projectiles, func(a, b Projectile) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	return report, nil
}
