package util

import (
	"os"
	"sync"
)

var (
	atExitMutex sync.Mutex
	atExitFuncs []func()
)

// AtExit registers the function fn to be called on program termination.
// The functions will be called in reverse order they were registered.
// Each function runs at most once, so it is safe to also call it directly
// through the returned function, e.g. from a deferred teardown.
func AtExit(fn func()) func() {
	if fn == nil {
		panic("AtExit called with nil func")
	}
	once := &sync.Once{}
	wrapped := func() {
		once.Do(fn)
	}
	atExitMutex.Lock()
	atExitFuncs = append(atExitFuncs, wrapped)
	atExitMutex.Unlock()
	return wrapped
}

// RunAtExitFuncs runs any functions registered with AtExit().
func RunAtExitFuncs() {
	atExitMutex.Lock()
	fns := make([]func(), len(atExitFuncs))
	copy(fns, atExitFuncs)
	atExitMutex.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// Exit executes any functions registered with AtExit() then exits the program
// with os.Exit(code).
//
// NOTE: It must be used instead of os.Exit() since calling os.Exit() would
// leave the terminal in raw mode on the alternate screen.
func Exit(code int) {
	defer os.Exit(code)
	RunAtExitFuncs()
}
