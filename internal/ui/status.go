package ui

import (
	"fmt"
	"time"

	"github.com/ytget/yt-search/internal/model"
)

// SearchStatus is the part of a session the status line describes
type SearchStatus struct {
	State     model.SessionState
	Reason    model.StopReason
	Cancelled bool
	Count     int
	Message   string
}

// StatusText renders st in the current language. timeout is the
// inactivity window shown after a stop by timeout.
func StatusText(loc *Localization, st SearchStatus, timeout time.Duration) string {
	switch st.State {
	case model.SessionRunning:
		if st.Count == 0 {
			return loc.GetText(KeySearching)
		}
		return fmt.Sprintf(loc.GetText(KeyAddedFormat), st.Count)
	case model.SessionStoppingRequested:
		if st.Message != "" {
			return fmt.Sprintf(loc.GetText(KeyStopErrorFormat), st.Message)
		}
		if st.Reason == model.StopReasonTimeout {
			return timeoutText(loc, timeout)
		}
		return loc.GetText(KeyStopping)
	case model.SessionCompleted:
		switch {
		case st.Message != "" && st.Cancelled:
			return fmt.Sprintf(loc.GetText(KeyStopErrorFormat), st.Message)
		case st.Message != "":
			return fmt.Sprintf(loc.GetText(KeyErrorFormat), st.Message)
		case st.Cancelled && st.Reason == model.StopReasonTimeout:
			return timeoutText(loc, timeout)
		case st.Cancelled:
			return loc.GetText(KeySearchStopped)
		case st.Count == 0:
			return loc.GetText(KeyNoVideosFound)
		default:
			return fmt.Sprintf(loc.GetText(KeySearchFinishedFormat), st.Count)
		}
	case model.SessionFailed:
		return fmt.Sprintf(loc.GetText(KeyErrorFormat), st.Message)
	}
	return ""
}

func timeoutText(loc *Localization, timeout time.Duration) string {
	return fmt.Sprintf(loc.GetText(KeyTimeoutFormat), int(timeout.Round(time.Second)/time.Second))
}
