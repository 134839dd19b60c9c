package ecs

// System is one pass over the storage, run by a Scheduler once per frame (or
// once at startup). Query and Singleton fields of a system struct are bound to
// the scheduler's storage on registration; other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) { f(frame) }
