package util

import (
	"sync/atomic"
)

// AtomicBool is a boxed-class that provides synchronized access to the
// underlying boolean value
type AtomicBool struct {
	state atomic.Bool
}

// NewAtomicBool returns a new AtomicBool
func NewAtomicBool(initialState bool) *AtomicBool {
	a := &AtomicBool{}
	a.state.Store(initialState)
	return a
}

// Get returns the current boolean value synchronously
func (a *AtomicBool) Get() bool {
	return a.state.Load()
}

// Set updates the boolean value synchronously
func (a *AtomicBool) Set(newState bool) bool {
	a.state.Store(newState)
	return newState
}

// Acquire switches the value from false to true. It returns false when the
// value was already true, which callers use as a start-once guard.
func (a *AtomicBool) Acquire() bool {
	return a.state.CompareAndSwap(false, true)
}
