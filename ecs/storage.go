package ecs

import (
	"reflect"
	"slices"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the entity store: archetype tables plus singleton components.
// It is not safe for concurrent use; frames mutate it from a single goroutine.
type Storage struct {
	archetypes []*Archetype
	byHash     *intmap.Map[uint32, *Archetype]
	registry   *ComponentRegistry

	singletons     map[reflect.Type]*singletonEntry
	singletonOrder []reflect.Type
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		byHash:     intmap.New[uint32, *Archetype](32),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns the archetypes created so far, in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.archetypes
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.lookup(extractComponentTypes(components))
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	sort.Sort(byTypeName(sorted))
	return s.lookup(sorted)
}

func (s *Storage) lookup(types []reflect.Type) *Archetype {
	hash := hashTypesToUint32(types)
	if archetype, ok := s.byHash.Get(hash); ok && slices.Equal(archetype.types, types) {
		return archetype
	}
	// hash collision: fall back to a scan
	for _, archetype := range s.archetypes {
		if slices.Equal(archetype.types, types) {
			return archetype
		}
	}
	return nil
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	if archetype := s.lookup(types); archetype != nil {
		return archetype
	}
	if len(s.archetypes) >= 1<<16-1 {
		panic("too many archetypes")
	}

	hash := hashTypesToUint32(types)
	archetype := NewArchetype(uint16(len(s.archetypes)+1), hash, types, s.registry)
	s.archetypes = append(s.archetypes, archetype)
	if _, taken := s.byHash.Get(hash); !taken {
		s.byHash.Put(hash, archetype)
	}
	return archetype
}

func (s *Storage) archetypeOf(id EntityId) *Archetype {
	slot := int(id.ArchetypeId())
	if slot == 0 || slot > len(s.archetypes) {
		return nil
	}
	return s.archetypes[slot-1]
}

// Spawn creates a new entity with the provided components and returns its id.
// Ids are never shared by two live entities.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	return archetype.Spawn(components)
}

// Delete removes the entity. Deleting an id that is already gone is a no-op;
// the returned bool reports whether anything was removed.
func (s *Storage) Delete(id EntityId) bool {
	archetype := s.archetypeOf(id)
	if archetype == nil {
		return false
	}
	return archetype.Delete(id)
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype := s.archetypeOf(id)
	return archetype != nil && archetype.Alive(id)
}

// Len returns the number of live entities across all archetypes.
func (s *Storage) Len() int {
	total := 0
	for _, archetype := range s.archetypes {
		total += archetype.Len()
	}
	return total
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype := s.archetypeOf(id)
	if archetype == nil {
		return nil
	}
	return archetype.GetComponent(id, compType)
}

// HasComponent checks if a live entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype := s.archetypeOf(id)
	return archetype != nil && archetype.Alive(id) && archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton of its type, replacing any previous one.
// Pointers previously handed out for that type keep pointing at the old value.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if typ == nil {
		panic("singleton value must not be nil")
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
		value = reflect.ValueOf(value).Elem().Interface()
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.ValueOf(value))

	if _, exists := s.singletons[typ]; !exists {
		s.singletonOrder = append(s.singletonOrder, typ)
	}
	s.singletons[typ] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// ReadSingleton points *target at the stored singleton of type T, where target is a **T.
// It returns false, leaving target untouched, when no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.singletons[v.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	v.Elem().Set(entry.value)
	return true
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType == nil {
			panic("components cannot be nil")
		}

		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
			panic("components cannot be pointers, maps, channels, interfaces or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a uint32 FNV-1a hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the T component of the entity, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
