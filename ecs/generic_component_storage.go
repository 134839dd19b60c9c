package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage owns exactly one registry; component types must be registered
// before the first entity carrying them is spawned.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a component type with the given registry.
// Registering the same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// Registered reports whether the component type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const blockSize = 64

// genericComponentStorage stores components of type T in fixed-size blocks so
// pointers handed out by Get stay valid while the storage grows.
type genericComponentStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
	live      int
}

func locate(index int) (block, slot int) {
	return index / blockSize, index % blockSize
}

// Append stores a component and returns its index. Freed slots are reused
// most-recently-freed first, which keeps every storage of an archetype in step.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
	}

	block, slot := locate(index)
	for block >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([blockSize]T))
		cs.filled = append(cs.filled, new([blockSize]bool))
	}

	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	cs.live++
	return index
}

// Get returns a *T for the component at index, or nil for an empty slot.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	block, slot := locate(index)
	return &cs.blocks[block][slot]
}

// Delete empties the slot at index and queues it for reuse.
// Deleting an empty slot is a no-op.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if cs.clear(index) {
		cs.freeSlots = append(cs.freeSlots, index)
	}
}

// Retire empties the slot at index without ever handing it out again.
func (cs *genericComponentStorage[T]) Retire(index int) {
	cs.clear(index)
}

func (cs *genericComponentStorage[T]) clear(index int) bool {
	if !cs.Has(index) {
		return false
	}
	block, slot := locate(index)

	var zero T
	cs.blocks[block][slot] = zero
	cs.filled[block][slot] = false
	cs.live--
	return true
}

// Has reports whether the slot at index holds a component.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 || index >= cs.nextIndex {
		return false
	}
	block, slot := locate(index)
	return cs.filled[block][slot]
}

// Len returns the number of live components.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.live
}

// Iter yields the indices of filled slots in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			block, slot := locate(i)
			if !cs.filled[block][slot] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
