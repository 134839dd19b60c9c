package ecs_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ebeclick/ecs"
)

func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 2.0}, &Velocity{DX: 0.5, DY: 0.5}, Score(32))
	assert.NotEqual(t, ecs.EntityId(0), id)
	assert.Greater(t, id.ArchetypeId(), uint16(0))
	assert.True(t, storage.Alive(id))
	assert.Equal(t, 1, storage.Len())
}

func TestGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3.0, Y: 4.0}, Name{Value: "Test Entity"})

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(3.0), pos.X)
	assert.Equal(t, float32(4.0), pos.Y)

	name := storage.GetComponent(id, reflect.TypeOf(Name{}))
	require.NotNil(t, name)
	assert.Equal(t, "Test Entity", name.(*Name).Value)

	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Velocity{})))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestComponentPointersAreStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	pos := ecs.ReadComponent[Position](storage, first)

	for i := range 500 {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.X = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, first).X)
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1.0, Y: 1.0}, &Health{Current: 100, Max: 100})
	require.NotNil(t, ecs.ReadComponent[Position](storage, id))

	assert.True(t, storage.Delete(id))
	assert.False(t, storage.Alive(id))
	assert.Nil(t, ecs.ReadComponent[Position](storage, id))
	assert.Zero(t, storage.Len())
}

func TestDeleteIsIdempotent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{})
	other := storage.Spawn(Position{X: 7})

	assert.True(t, storage.Delete(id))
	assert.False(t, storage.Delete(id))
	assert.False(t, storage.Delete(id))

	assert.True(t, storage.Alive(other))
	assert.Equal(t, 1, storage.Len())
}

func TestStaleIdDoesNotReachReusedSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	old := storage.Spawn(Position{X: 1})
	require.True(t, storage.Delete(old))

	reused := storage.Spawn(Position{X: 2})
	assert.Equal(t, old.Index(), reused.Index(), "the freed slot is reused")
	assert.NotEqual(t, old, reused)
	assert.Equal(t, old.Generation()+1, reused.Generation())

	assert.False(t, storage.Alive(old))
	assert.Nil(t, ecs.ReadComponent[Position](storage, old))
	assert.False(t, storage.Delete(old), "a stale id never removes the new occupant")
	assert.True(t, storage.Alive(reused))
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, reused).X)
}

func TestExhaustedSlotIsRetired(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{})
	id := first
	for range math.MaxUint16 {
		require.True(t, storage.Delete(id))
		next := storage.Spawn(Position{})
		require.Equal(t, first.Index(), next.Index())
		id = next
	}
	assert.Equal(t, uint16(math.MaxUint16), id.Generation())

	require.True(t, storage.Delete(id))
	assert.False(t, storage.Alive(id))
	assert.False(t, storage.Alive(first))

	replacement := storage.Spawn(Position{X: 9})
	assert.NotEqual(t, first.Index(), replacement.Index(), "an exhausted slot is never reused")
	assert.False(t, storage.Alive(first))
	assert.False(t, storage.Delete(first))
	assert.False(t, storage.Delete(id))
	assert.True(t, storage.Alive(replacement))
	assert.Equal(t, 1, storage.Len())
}

func TestIdsAreUniqueAmongLiveEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	live := make(map[ecs.EntityId]bool)
	var order []ecs.EntityId
	for round := range 20 {
		for range 10 {
			id := storage.Spawn(Position{}, Velocity{})
			assert.False(t, live[id], "id handed out twice")
			live[id] = true
			order = append(order, id)
		}
		// remove every third entity spawned so far
		for i := round % 3; i < len(order); i += 3 {
			if storage.Delete(order[i]) {
				delete(live, order[i])
			}
		}
	}
	assert.Equal(t, len(live), storage.Len())
}

func TestMultipleEntitiesSameArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id1 := storage.Spawn(&Position{X: 1.0, Y: 1.0}, &Velocity{DX: 0.1, DY: 0.1})
	id2 := storage.Spawn(&Velocity{DX: 0.2, DY: 0.2}, &Position{X: 2.0, Y: 2.0})

	assert.Equal(t, id1.ArchetypeId(), id2.ArchetypeId(), "component order does not matter")
	assert.NotEqual(t, id1.Index(), id2.Index())
	assert.Len(t, storage.Archetypes(), 1)

	id3 := storage.Spawn(Position{})
	assert.NotEqual(t, id1.ArchetypeId(), id3.ArchetypeId())
	assert.Len(t, storage.Archetypes(), 2)

	assert.Same(t, storage.GetArchetype(Velocity{}, Position{}), storage.Archetypes()[0])
	assert.Nil(t, storage.GetArchetype(Health{}))
}

func TestHasComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{}, PlayerController{})
	assert.True(t, storage.HasComponent(id, reflect.TypeOf(PlayerController{})))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Health{})))

	storage.Delete(id)
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Position{})))
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(nil) })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	assert.Panics(t, func() { storage.Spawn(Position{}, struct{ Unregistered int }{}) })
}

func TestSingletons(t *testing.T) {
	type Clock struct{ Ticks int }

	storage := ecs.NewStorage(newTestRegistry())

	var clock *Clock
	assert.False(t, storage.ReadSingleton(&clock))
	assert.Nil(t, clock)

	storage.AddSingleton(Clock{Ticks: 3})
	require.True(t, storage.ReadSingleton(&clock))
	assert.Equal(t, 3, clock.Ticks)

	clock.Ticks++
	s := ecs.NewSingleton[Clock](storage)
	assert.Equal(t, 4, s.Get().Ticks)
	assert.True(t, s.Exists())

	assert.Panics(t, func() { storage.ReadSingleton(clock) })
	assert.Zero(t, storage.Len(), "singletons are not entities")
}
