package core

import "fmt"

// EventType represents the kind of change observed on the persisted store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of the persisted store file, typically caused by
// another process writing annotations while this one has views open.
type Event struct {
	Type      EventType
	Path      string // store file path
	Timestamp int64  // Unix timestamp
}

// String implements fmt.Stringer (and thereby lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}
