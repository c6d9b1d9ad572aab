package util

import "sync"

// EventType is the type for dashboard events
type EventType int

// Events is a type that associates EventType to any data
type Events map[EventType]any

// EventBox is used for coordinating events
type EventBox struct {
	events Events
	cond   *sync.Cond
}

// NewEventBox returns a new EventBox
func NewEventBox() *EventBox {
	return &EventBox{
		events: make(Events),
		cond:   sync.NewCond(&sync.Mutex{})}
}

// Wait blocks the goroutine until signaled
func (b *EventBox) Wait(callback func(*Events)) {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()

	for len(b.events) == 0 {
		b.cond.Wait()
	}

	callback(&b.events)
}

// Set turns on the event type on the box
func (b *EventBox) Set(event EventType, value any) {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	b.events[event] = value
	b.cond.Broadcast()
}

// Clear clears the events
// Unsynchronized; should be called within Wait routine
func (events *Events) Clear() {
	for event := range *events {
		delete(*events, event)
	}
}

// Peek peeks at the event box if the given event is set
func (b *EventBox) Peek(event EventType) bool {
	b.cond.L.Lock()
	defer b.cond.L.Unlock()
	_, ok := b.events[event]
	return ok
}

// WaitFor blocks the execution until the event is received and returns the
// value it was set with. The event stays set.
func (b *EventBox) WaitFor(event EventType) any {
	var value any
	looping := true
	for looping {
		b.Wait(func(events *Events) {
			if v, found := (*events)[event]; found {
				value = v
				looping = false
				return
			}
			// Unrelated events are dropped so that Wait blocks again
			events.Clear()
		})
	}
	return value
}
