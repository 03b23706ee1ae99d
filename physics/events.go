package physics

// EventKind identifies body contact changes.
type EventKind string

const (
	EventGrounded EventKind = "grounded"
	EventAirborne EventKind = "airborne"
	EventBlocked  EventKind = "blocked"
)

// Event is emitted when the contact state of a body changes. Collider is the
// index into the terrain slice that decided the contact, or -1.
type Event struct {
	Kind     EventKind
	Collider int
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
