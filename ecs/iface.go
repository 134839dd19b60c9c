package ecs

import "unsafe"

// iface mirrors the runtime layout of an interface value: a type word and a
// data word. For a component boxed as *T the data word is the pointer itself.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
