package game

import (
	"cmp"
	"slices"

	"github.com/plus3/ebeclick/assets"
	"github.com/plus3/ebeclick/ecs"
)

type placement struct {
	image   assets.Handle
	x, y, z float32
}

// RenderSystem hands the current position of every sprite to a SpriteSink,
// ordered by depth.
type RenderSystem struct {
	Sprites ecs.Query[struct {
		*Transform
		*Sprite
	}]
	Sink SpriteSink

	buf []placement
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Sink == nil {
		return
	}

	s.buf = s.buf[:0]
	for e := range s.Sprites.Values() {
		s.buf = append(s.buf, placement{
			image: e.Sprite.Image,
			x:     e.Transform.X,
			y:     e.Transform.Y,
			z:     e.Transform.Z,
		})
	}
	slices.SortStableFunc(s.buf, func(a, b placement) int {
		return cmp.Compare(a.z, b.z)
	})

	for _, p := range s.buf {
		s.Sink.Place(p.image, p.x, p.y, p.z)
	}
}
