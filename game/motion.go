package game

import "github.com/plus3/ebeclick/ecs"

// OutOfBounds reports whether t lies strictly beyond the despawn boundary:
// the scene's half extent plus DespawnMargin, on either axis.
func OutOfBounds(t Transform) bool {
	const (
		limitX = SceneWidth/2 + DespawnMargin
		limitY = SceneHeight/2 + DespawnMargin
	)
	return t.X > limitX || t.X < -limitX || t.Y > limitY || t.Y < -limitY
}

// Advance moves t by one fixed step of velocity m.
func Advance(t *Transform, m Moveable) {
	t.X += HorizontalSpeed * m.VelX * FixedStep
	t.Y += VerticalSpeed * m.VelY * FixedStep
}

// MotionSystem integrates every moveable entity once per frame and queues the
// removal of auto-despawning ones that left the despawn boundary. Removals
// take effect when the frame's commands are flushed.
type MotionSystem struct {
	Moving ecs.Query[struct {
		*Transform
		*Moveable
	}]
	Counters ecs.Singleton[Counters]

	// OnDespawn, if set, observes every removal with the entity's last position.
	OnDespawn func(id ecs.EntityId, at Transform)
}

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) {
	for id, e := range s.Moving.Iter() {
		Advance(e.Transform, *e.Moveable)

		if !e.Moveable.AutoDespawn || !OutOfBounds(*e.Transform) {
			continue
		}

		frame.Commands.Delete(id)
		if c := s.Counters.Get(); c != nil {
			c.Despawned++
		}
		if s.OnDespawn != nil {
			s.OnDespawn(id, *e.Transform)
		}
	}
}
