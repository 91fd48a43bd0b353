package model

// EventKind identifies a search session event
type EventKind string

const (
	// EventItemFound carries one parsed result
	EventItemFound EventKind = "ItemFound"

	// EventStatusChanged reports a state transition (or a status message)
	EventStatusChanged EventKind = "StatusChanged"

	// EventTimedOut is emitted once when the inactivity window elapsed
	EventTimedOut EventKind = "TimedOut"
)

// Event is delivered to the presentation layer for a single session.
// SessionID lets receivers drop events of superseded sessions.
type Event struct {
	SessionID string
	Kind      EventKind
	State     SessionState
	Count     int           // results gathered so far
	Result    *SearchResult // set for EventItemFound
	Cancelled bool          // set on the terminal Completed status after a stop
	Reason    StopReason
	Message   string // error or diagnostic text, if any
}

// IsTerminal reports whether the event announces a terminal state
func (e Event) IsTerminal() bool {
	return e.Kind == EventStatusChanged && e.State.IsTerminal()
}
