package game

import (
	"github.com/pkg/errors"
	"github.com/plus3/ebeclick/assets"
)

// GameAssets holds the handles of every asset the game uses.
type GameAssets struct {
	Player       assets.Handle
	Chicken      assets.Handle
	ChickenSound assets.Handle
	Dog          assets.Handle
	DogSound     assets.Handle
}

// LoadGameAssets resolves all game assets through the catalog.
// Any failure is fatal for startup and is returned as is.
func LoadGameAssets(catalog *assets.Catalog) (GameAssets, error) {
	var ga GameAssets
	for _, entry := range []struct {
		name   string
		handle *assets.Handle
	}{
		{PlayerSprite, &ga.Player},
		{ChickenSprite, &ga.Chicken},
		{ChickenSound, &ga.ChickenSound},
		{DogSprite, &ga.Dog},
		{DogSound, &ga.DogSound},
	} {
		h, err := catalog.Load(entry.name)
		if err != nil {
			return GameAssets{}, errors.WithMessage(err, "load game assets")
		}
		*entry.handle = h
	}
	return ga, nil
}

// SpriteFor returns the sprite of a projectile kind.
func (ga *GameAssets) SpriteFor(k Kind) assets.Handle {
	if k == KindChicken {
		return ga.Chicken
	}
	return ga.Dog
}

// SoundFor returns the sound played when a projectile of kind k spawns.
func (ga *GameAssets) SoundFor(k Kind) assets.Handle {
	if k == KindChicken {
		return ga.ChickenSound
	}
	return ga.DogSound
}
