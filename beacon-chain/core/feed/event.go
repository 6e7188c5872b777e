// Package feed defines the event types the state transition publishes to
// interested observers.
package feed

// EventType is the type that defines the type of event.
type EventType int

// Event is the event that is sent with operation feed updates.
type Event struct {
	// Type is the type of event.
	Type EventType
	// Data is event-specific data.
	Data interface{}
}
