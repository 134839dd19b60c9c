package game

import (
	"github.com/pkg/errors"
	"github.com/plus3/ebeclick/ecs"
)

var (
	// ErrPlayerExists is returned when a second player would be spawned.
	ErrPlayerExists = errors.New("player already spawned")
	// ErrAssetsMissing is returned when game assets were not loaded before bootstrap.
	ErrAssetsMissing = errors.New("game assets not loaded")
)

// SpawnPlayer inserts the single player entity at the scene origin.
func SpawnPlayer(storage *ecs.Storage, ga *GameAssets) (ecs.EntityId, error) {
	if ga == nil {
		return 0, ErrAssetsMissing
	}

	players := ecs.NewView[struct{ *Player }](storage)
	for id := range players.Iter() {
		return 0, errors.Wrapf(ErrPlayerExists, "entity %d", id)
	}

	return storage.Spawn(
		Transform{},
		Sprite{Image: ga.Player},
		Player{},
	), nil
}

// PlayerBootstrapSystem is a startup system spawning the player once the
// game assets are available.
type PlayerBootstrapSystem struct {
	Assets ecs.Singleton[GameAssets]

	Player ecs.EntityId
	Err    error
}

func (s *PlayerBootstrapSystem) Execute(frame *ecs.UpdateFrame) {
	s.Player, s.Err = SpawnPlayer(frame.Storage, s.Assets.Get())
}
