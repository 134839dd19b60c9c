package ecs_test

import (
	"testing"

	"github.com/plus3/ebeclick/ecs"
)

func BenchmarkSpawnDelete(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	b.ReportAllocs()
	for b.Loop() {
		id := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
		storage.Delete(id)
	}
}

func BenchmarkSchedulerMovement(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := range 10_000 {
		storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1, DY: 1})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})

	b.ReportAllocs()
	for b.Loop() {
		scheduler.Once(1.0 / 60)
	}
}

func BenchmarkReadComponent(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	ids := make([]ecs.EntityId, 1024)
	for i := range ids {
		ids[i] = storage.Spawn(Position{X: float32(i)}, Velocity{})
	}

	var sum float32
	for i := 0; b.Loop(); i++ {
		sum += ecs.ReadComponent[Position](storage, ids[i%len(ids)]).X
	}
	_ = sum
}
