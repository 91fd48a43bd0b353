package search

import "github.com/ytget/yt-search/internal/model"

// EventSink receives session events. Implementations must not block for
// long and must not call back into the session synchronously: events are
// delivered from the session's own goroutines.
type EventSink interface {
	Publish(ev model.Event)
}

// SinkFunc adapts a function to EventSink
type SinkFunc func(ev model.Event)

// Publish implements EventSink
func (f SinkFunc) Publish(ev model.Event) {
	f(ev)
}

type discardSink struct{}

func (discardSink) Publish(model.Event) {}
