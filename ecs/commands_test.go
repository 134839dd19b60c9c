package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ebeclick/ecs"
)

type commandRecorder struct {
	run func(frame *ecs.UpdateFrame)
}

func (p *commandRecorder) Execute(frame *ecs.UpdateFrame) { p.run(frame) }

func TestCommandsAreAppliedAfterTheFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	victim := storage.Spawn(Position{X: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&commandRecorder{run: func(frame *ecs.UpdateFrame) {
		frame.Commands.Spawn(Position{X: 2})
		frame.Commands.Delete(victim)
		assert.Equal(t, 2, frame.Commands.Pending())
		assert.True(t, storage.Alive(victim), "nothing applied mid-frame")
		assert.Equal(t, 1, storage.Len())
	}})

	scheduler.Once(1.0 / 60)

	assert.False(t, storage.Alive(victim))
	assert.Equal(t, 1, storage.Len())
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	victim := storage.Spawn(Position{})

	var order []string
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() {
			order = append(order, "defer")
			assert.False(t, storage.Alive(victim), "deletes run first")
			assert.Equal(t, 1, storage.Len(), "spawns run before defers")
		})
		frame.Commands.Spawn(Position{})
		frame.Commands.Delete(victim)
	}))

	scheduler.Once(0)
	assert.Equal(t, []string{"defer"}, order)
}

func TestCommandsFlushCountsRemovals(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Position{})
	b := storage.Spawn(Position{})

	var removed int
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Delete(a)
		frame.Commands.Delete(a)
		frame.Commands.Delete(b)
		frame.Commands.Defer(func() { removed = 2 - storage.Len() })
	}))
	scheduler.Once(0)

	assert.Equal(t, 2, removed)
	assert.Zero(t, storage.Len())
}

func TestCommandsFlushReturnsRemovedCount(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Position{})
	gone := storage.Spawn(Position{})
	storage.Delete(gone)

	var commands *ecs.Commands
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		commands = frame.Commands
		frame.Commands.Delete(a)
		frame.Commands.Delete(a)
		frame.Commands.Delete(gone)
		frame.Commands.Defer(func() {})

		assert.Equal(t, 1, frame.Commands.Flush(storage), "duplicate and stale deletes are not counted")
		assert.Zero(t, frame.Commands.Pending())
	}))
	scheduler.Once(0)

	require.NotNil(t, commands)
	assert.Zero(t, commands.Flush(storage), "a flushed buffer is empty")
}
