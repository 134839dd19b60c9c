package ecs

import (
	"math"
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype stores every entity that carries exactly one combination of
// component types. Each storage index is guarded by a generation counter so
// a stale EntityId never resolves to the entity that later reused its slot.
type Archetype struct {
	id          uint16
	hash        uint32
	types       []reflect.Type
	storages    []iComponentStorage
	generations []uint16
}

// NewArchetype creates an archetype for the sorted component types.
// It panics if one of the types has not been registered.
func NewArchetype(id uint16, hash uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		hash:     hash,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// Spawn appends the components and returns the id of the new entity.
func (a *Archetype) Spawn(components []any) EntityId {
	index := -1
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		if idx := a.storageIndex(compType); idx >= 0 {
			index = a.storages[idx].Append(comp)
		}
	}

	for index >= len(a.generations) {
		a.generations = append(a.generations, 0)
	}

	return NewEntityId(a.id, a.generations[index], uint32(index))
}

// Alive reports whether id names an entity currently stored in this archetype.
func (a *Archetype) Alive(id EntityId) bool {
	if id.ArchetypeId() != a.id || len(a.storages) == 0 {
		return false
	}
	index := int(id.Index())
	if index >= len(a.generations) || a.generations[index] != id.Generation() {
		return false
	}
	return a.storages[0].Has(index)
}

// GetComponent returns a pointer to the component of compType for id, or nil.
func (a *Archetype) GetComponent(id EntityId, compType reflect.Type) any {
	if !a.Alive(id) {
		return nil
	}
	idx := a.storageIndex(compType)
	if idx < 0 {
		return nil
	}
	return a.storages[idx].Get(int(id.Index()))
}

// Delete removes the entity and bumps the generation of its slot. A slot whose
// generation is exhausted is retired instead, so its ids never alias.
// It returns false when id was already gone.
func (a *Archetype) Delete(id EntityId) bool {
	if !a.Alive(id) {
		return false
	}
	index := int(id.Index())
	if a.generations[index] == math.MaxUint16 {
		for _, storage := range a.storages {
			storage.Retire(index)
		}
		return true
	}
	for _, storage := range a.storages {
		storage.Delete(index)
	}
	a.generations[index]++
	return true
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's slot in its storage.
func (a *Archetype) ID() uint16 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter returns an iterator over all live EntityIds in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			if !yield(a.entityAt(index)) {
				return
			}
		}
	}
}

func (a *Archetype) entityAt(index int) EntityId {
	return NewEntityId(a.id, a.generations[index], uint32(index))
}

func (a *Archetype) storageIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}
