package ecs

import "iter"

// iComponentStorage is an interface for a type-erased component storage.
type iComponentStorage interface {
	Append(item any) int
	Delete(index int)
	Retire(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}
