package dropzone

import (
	"sync"

	"github.com/gobeaver/dropzone/filevalidator"
)

// EventType identifies a dropzone notification
type EventType int

const (
	// EventAdded carries the files accepted by one intake.
	EventAdded EventType = iota + 1
	// EventChanged carries the full working set after a change.
	EventChanged
	// EventRemoved carries the single file removed from the working set.
	EventRemoved
	// EventRejected carries the files rejected by one intake.
	EventRejected
	// EventBatchRejected reports an intake refused as a whole; see Event.Err.
	EventBatchRejected
	// EventStateChanged reports a hover or disabled transition.
	EventStateChanged
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	case EventRejected:
		return "rejected"
	case EventBatchRejected:
		return "batch_rejected"
	case EventStateChanged:
		return "state_changed"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners in commit order. For one intake,
// EventChanged always precedes EventAdded, which precedes EventRejected.
type Event struct {
	Type     EventType
	BatchID  string
	Files    []*filevalidator.Accepted
	Rejected []*filevalidator.Rejected
	State    State
	Err      error
}

// Listener receives dropzone events. Listeners run synchronously and must
// not call SubmitBatch, RemoveFile or drag methods on the same dropzone.
type Listener func(Event)

// emitter fans events out to registered listeners
type emitter struct {
	mu        sync.RWMutex
	listeners []Listener
}

func (e *emitter) subscribe(l Listener) (unsubscribe func()) {
	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	index := len(e.listeners) - 1
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		// Set to nil instead of removing to avoid index shifting
		e.listeners[index] = nil
	}
}

func (e *emitter) emit(events ...Event) {
	e.mu.RLock()
	listeners := make([]Listener, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.RUnlock()

	for _, ev := range events {
		for _, l := range listeners {
			if l != nil {
				l(ev)
			}
		}
	}
}
