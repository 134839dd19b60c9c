package ecs

// EntityId packs the archetype slot (upper 16 bits), the slot generation
// (next 16 bits) and the entity index (lower 32 bits).
// Archetype slots start at 1 so the zero EntityId never names a live entity.
type EntityId uint64

// NewEntityId creates an EntityId from an archetype slot, a generation and an entity index
func NewEntityId(archetype uint16, generation uint16, index uint32) EntityId {
	return EntityId(uint64(archetype)<<48 | uint64(generation)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype slot from the entity ID
func (e EntityId) ArchetypeId() uint16 {
	return uint16(e >> 48)
}

// Generation extracts the generation the index had when the entity was spawned
func (e EntityId) Generation() uint16 {
	return uint16(e >> 32)
}

// Index extracts the entity index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}
