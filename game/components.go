package game

import (
	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/ecs"
)

// Transform is a position in scene units; Z orders sprites, higher on top.
type Transform struct {
	X, Y, Z float32
}

// Sprite is the image drawn centred on an entity's Transform.
type Sprite struct {
	Image assets.Handle
}

// Player marks the anchor sprite. It never moves and is never despawned.
type Player struct{}

// Moveable entities advance by their velocity every frame.
type Moveable struct {
	AutoDespawn bool
	VelX, VelY  float32
}

// Kind selects a projectile's sprite and spawn sound. It is fixed at spawn.
type Kind uint8

const (
	KindDog Kind = iota
	KindChicken
)

func (k Kind) String() string {
	if k == KindChicken {
		return "chicken"
	}
	return "dog"
}

// Critter tags a projectile with its Kind.
type Critter struct {
	Kind Kind
}

// RegisterComponents registers every component type spawned by the game.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Moveable](registry)
	ecs.RegisterComponent[Critter](registry)
}
