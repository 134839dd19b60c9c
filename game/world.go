package game

import (
	"context"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/ecs"
)

// Options wires a World to its host.
type Options struct {
	// Catalog resolves the game assets. It is sealed once they are loaded.
	Catalog *assets.Catalog
	Input   InputSource
	Audio   AudioSink
	Sprites SpriteSink

	// Rand overrides the random source; otherwise one is seeded from Seed,
	// or randomly when Seed is 0.
	Rand Rand
	Seed uint64

	// Triggers defaults to DefaultTriggers.
	Triggers ButtonSet

	Logger *zerolog.Logger
}

// World owns the entity store and the two schedulers driving it: Update runs
// input, spawning and motion once per fixed step; Render hands sprites to the
// sprite sink and may run at any rate.
type World struct {
	Storage *ecs.Storage
	Update  *ecs.Scheduler
	Render  *ecs.Scheduler

	Assets GameAssets
	Player ecs.EntityId

	counters *ecs.Singleton[Counters]
	log      zerolog.Logger
}

// NewWorld loads the game assets, seals the catalog and spawns the player.
// An asset failure is returned before any frame can run.
func NewWorld(opts Options) (*World, error) {
	if opts.Catalog == nil {
		return nil, errors.New("world needs an asset catalog")
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	ga, err := LoadGameAssets(opts.Catalog)
	if err != nil {
		return nil, err
	}
	opts.Catalog.Seal()
	log.Info().Int("assets", opts.Catalog.Len()).Msg("assets loaded")

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton[GameAssets](storage, ga)
	ecs.NewSingleton[PointerState](storage)

	w := &World{
		Storage:  storage,
		Update:   ecs.NewScheduler(storage),
		Render:   ecs.NewScheduler(storage),
		Assets:   ga,
		counters: ecs.NewSingleton[Counters](storage),
		log:      log,
	}

	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		log.Debug().Uint64("seed", seed).Msg("seeding spawn randomness")
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	audio := opts.Audio
	if audio == nil {
		audio = Silent
	}

	triggers := opts.Triggers
	if triggers == 0 {
		triggers = DefaultTriggers
	}

	bootstrap := &PlayerBootstrapSystem{}
	w.Update.RegisterStartup(bootstrap)

	w.Update.Register(&InputSystem{Source: opts.Input})
	w.Update.Register(&SpawnSystem{
		Triggers: triggers,
		Rand:     rng,
		Audio:    audio,
		OnSpawn:  w.logSpawn,
	})
	w.Update.Register(&MotionSystem{OnDespawn: w.logDespawn})

	w.Render.Register(&RenderSystem{Sink: opts.Sprites})

	w.Update.Startup()
	if bootstrap.Err != nil {
		return nil, errors.Wrap(bootstrap.Err, "bootstrap player")
	}
	w.Player = bootstrap.Player
	log.Info().Uint64("player", uint64(w.Player)).Msg("player spawned")

	return w, nil
}

func (w *World) logSpawn(id ecs.EntityId, kind Kind, at Transform) {
	w.log.Debug().
		Uint64("entity", uint64(id)).
		Stringer("kind", kind).
		Float32("x", at.X).
		Float32("y", at.Y).
		Msg("spawned")
}

func (w *World) logDespawn(id ecs.EntityId, at Transform) {
	w.log.Debug().
		Uint64("entity", uint64(id)).
		Float32("x", at.X).
		Float32("y", at.Y).
		Msg("despawned")
}

// Step runs one fixed-step frame: input, spawn, motion, removal.
func (w *World) Step() {
	w.Update.Once(float64(FixedStep))
}

// Draw hands every sprite's current position to the sprite sink.
func (w *World) Draw() {
	w.Render.Once(0)
}

// Run steps the world at FramesPerSecond until ctx is cancelled.
func (w *World) Run(ctx context.Context) {
	w.Update.Run(ctx, FrameInterval)
}

// Counters returns a copy of the projectile counters.
func (w *World) Counters() Counters {
	return *w.counters.Get()
}

// Projectiles returns the number of live projectiles in the store.
func (w *World) Projectiles() int {
	n := 0
	for range ecs.NewView[struct{ *Critter }](w.Storage).Iter() {
		n++
	}
	return n
}
