package ui

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/yt-search/internal/model"
)

// MainThreadSink hands supervisor events to a handler on the fyne main
// goroutine, preserving their order.
type MainThreadSink struct {
	do     func(func())
	handle func(model.Event)
}

// NewMainThreadSink creates a sink calling handle through fyne.Do
func NewMainThreadSink(handle func(model.Event)) *MainThreadSink {
	return &MainThreadSink{do: fyne.Do, handle: handle}
}

// Publish implements search.EventSink
func (s *MainThreadSink) Publish(ev model.Event) {
	if s.handle == nil {
		return
	}
	s.do(func() { s.handle(ev) })
}
