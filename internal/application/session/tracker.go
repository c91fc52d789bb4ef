// Package session tracks authentication state changes for observers.
package session

import "sync"

type EventType string

const (
	EventSignedIn       EventType = "signed_in"
	EventTokenRefreshed EventType = "token_refreshed"
	EventSignedOut      EventType = "signed_out"
)

// Event describes one auth state change for a subject.
type Event struct {
	Type      EventType
	SubjectID string
}

type Listener func(Event)

// Tracker is an explicit observable for auth events. The subscriber table
// is created on first use; Dispose drops every subscriber and turns later
// Subscribe and Publish calls into no-ops.
type Tracker struct {
	mu        sync.RWMutex
	once      sync.Once
	nextID    int
	listeners map[int]Listener
	disposed  bool
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) init() {
	t.once.Do(func() {
		t.listeners = make(map[int]Listener)
	})
}

// Subscribe registers fn and returns the function that unregisters it.
func (t *Tracker) Subscribe(fn Listener) (unsubscribe func()) {
	t.init()
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return func() {}
	}

	id := t.nextID
	t.nextID++
	t.listeners[id] = fn

	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

// Publish delivers ev to the current subscribers, synchronously, outside
// the lock so listeners may unsubscribe themselves.
func (t *Tracker) Publish(ev Event) {
	t.init()
	t.mu.RLock()
	if t.disposed {
		t.mu.RUnlock()
		return
	}
	snapshot := make([]Listener, 0, len(t.listeners))
	for _, fn := range t.listeners {
		snapshot = append(snapshot, fn)
	}
	t.mu.RUnlock()

	for _, fn := range snapshot {
		fn(ev)
	}
}

// Len reports the number of active subscribers.
func (t *Tracker) Len() int {
	t.init()
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners)
}

func (t *Tracker) Dispose() {
	t.init()
	t.mu.Lock()
	t.disposed = true
	t.listeners = make(map[int]Listener)
	t.mu.Unlock()
}
