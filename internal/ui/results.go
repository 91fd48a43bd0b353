package ui

import (
	"github.com/ytget/yt-search/internal/model"
)

// ResultsModel holds what the results table and status line show.
// It is only touched from the fyne main goroutine.
type ResultsModel struct {
	sessionID string
	results   []model.SearchResult // arrival order
	view      []model.SearchResult // sorted
	sort      SortState

	state     model.SessionState
	reason    model.StopReason
	cancelled bool
	message   string
}

// NewResultsModel creates an empty model sorted by DefaultSort
func NewResultsModel() *ResultsModel {
	return &ResultsModel{
		sort:  DefaultSort,
		state: model.SessionIdle,
	}
}

// SessionID returns the session whose results are shown
func (m *ResultsModel) SessionID() string {
	return m.sessionID
}

// Apply folds a supervisor event into the model and reports whether it
// changed anything. The first status of an unknown session (Running or
// Failed) replaces the shown results; other events of foreign sessions
// are dropped.
func (m *ResultsModel) Apply(ev model.Event) bool {
	if ev.SessionID != m.sessionID {
		if ev.Kind != model.EventStatusChanged ||
			(ev.State != model.SessionRunning && ev.State != model.SessionFailed) {
			return false
		}
		m.reset(ev.SessionID)
	}

	switch ev.Kind {
	case model.EventItemFound:
		if ev.Result == nil || m.state.IsTerminal() {
			return false
		}
		m.results = append(m.results, *ev.Result)
		m.view = SortResults(m.results, m.sort)
		return true
	case model.EventTimedOut:
		m.reason = model.StopReasonTimeout
		return true
	case model.EventStatusChanged:
		if m.state.IsTerminal() {
			return false
		}
		m.state = ev.State
		if ev.Reason != model.StopReasonNone {
			m.reason = ev.Reason
		}
		m.cancelled = m.cancelled || ev.Cancelled
		if ev.Message != "" {
			m.message = ev.Message
		}
		return true
	}
	return false
}

// SetResults shows a fixed list that does not belong to any search
// session, such as a playlist listing.
func (m *ResultsModel) SetResults(results []model.SearchResult) {
	m.reset("")
	m.results = append(m.results, results...)
	m.view = SortResults(m.results, m.sort)
	m.state = model.SessionCompleted
}

// Clear removes all results and returns to Idle
func (m *ResultsModel) Clear() {
	m.reset("")
}

func (m *ResultsModel) reset(sessionID string) {
	m.sessionID = sessionID
	m.results = nil
	m.view = nil
	m.state = model.SessionIdle
	m.reason = model.StopReasonNone
	m.cancelled = false
	m.message = ""
}

// Len returns the number of shown results
func (m *ResultsModel) Len() int {
	return len(m.view)
}

// At returns the i-th result in display order
func (m *ResultsModel) At(i int) (model.SearchResult, bool) {
	if i < 0 || i >= len(m.view) {
		return model.SearchResult{}, false
	}
	return m.view[i], true
}

// IndexOf returns the display index of the result with id, or -1
func (m *ResultsModel) IndexOf(id string) int {
	for i, r := range m.view {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Sort returns the active sort state
func (m *ResultsModel) Sort() SortState {
	return m.sort
}

// ToggleSort applies a header click on col
func (m *ResultsModel) ToggleSort(col SortColumn) {
	m.sort = m.sort.Toggle(col)
	m.view = SortResults(m.results, m.sort)
}

// Busy reports whether the shown session still owns a live process
func (m *ResultsModel) Busy() bool {
	return m.state.IsActive()
}

// Status summarizes the shown session for the status line
func (m *ResultsModel) Status() SearchStatus {
	return SearchStatus{
		State:     m.state,
		Reason:    m.reason,
		Cancelled: m.cancelled,
		Count:     len(m.results),
		Message:   m.message,
	}
}
