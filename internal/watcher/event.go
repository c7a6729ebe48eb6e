package watcher

import "time"

// EventType classifies a file system event.
type EventType int

const (
	// EventAdded is emitted when a new file appears (after settling).
	EventAdded EventType = iota
	// EventModified is emitted when a known file changes (after settling).
	EventModified
	// EventRemoved is emitted when a file is deleted.
	EventRemoved
)

// String returns the event type as a word.
func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventModified:
		return "modified"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is one settled file system change.
type Event struct {
	Type EventType
	Path string

	// Size and ModTime describe the file at settle time. Both are zero
	// for removals.
	Size    int64
	ModTime time.Time
}
