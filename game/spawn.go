package game

import (
	"github.com/plus3/ebeclick/ecs"
)

// Rand is the randomness a SpawnSystem draws from. *rand.Rand from math/rand/v2
// satisfies it; tests substitute a scripted sequence.
type Rand interface {
	Float32() float32
}

// SpawnSystem turns a trigger press into one projectile at the pointer plus
// the projectile's spawn sound. Any number of trigger edges in one frame
// still spawn a single projectile.
type SpawnSystem struct {
	Pointer  ecs.Singleton[PointerState]
	Assets   ecs.Singleton[GameAssets]
	Counters ecs.Singleton[Counters]

	Triggers ButtonSet
	Rand     Rand
	Audio    AudioSink

	// OnSpawn, if set, observes every spawned projectile.
	OnSpawn func(id ecs.EntityId, kind Kind, at Transform)
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	pointer := s.Pointer.Get()
	if pointer == nil || !pointer.JustPressed.Any(s.Triggers) {
		return
	}

	velX := MinVelX + (MaxVelX-MinVelX)*s.Rand.Float32()
	velY := MinVelY + (MaxVelY-MinVelY)*s.Rand.Float32()
	kind := KindDog
	if s.Rand.Float32() < ChickenChance {
		kind = KindChicken
	}

	x, y := pointer.ScenePosition()
	at := Transform{X: x, Y: y, Z: ProjectileDepth}
	ga := s.Assets.Get()

	id := frame.Storage.Spawn(
		at,
		Sprite{Image: ga.SpriteFor(kind)},
		Moveable{AutoDespawn: true, VelX: velX, VelY: velY},
		Critter{Kind: kind},
	)

	s.Audio.Play(ga.SoundFor(kind))

	if c := s.Counters.Get(); c != nil {
		c.Spawned++
		c.ByKind[kind]++
	}
	if s.OnSpawn != nil {
		s.OnSpawn(id, kind, at)
	}
}
