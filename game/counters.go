package game

// Counters is a singleton tallying projectile lifecycle events.
type Counters struct {
	Spawned   uint64
	Despawned uint64
	ByKind    [2]uint64
}

// Live returns the number of projectiles spawned and not yet despawned.
func (c Counters) Live() uint64 {
	return c.Spawned - c.Despawned
}
