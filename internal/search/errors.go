package search

import "errors"

var (
	// ErrAlreadyRunning is returned by Start while the current session is still running
	ErrAlreadyRunning = errors.New("search already running")

	// ErrLaunchFailed wraps the error returned when the search tool could not be started
	ErrLaunchFailed = errors.New("failed to launch search tool")

	// ErrTerminationFailed is reported when the process tree could not be killed
	ErrTerminationFailed = errors.New("failed to terminate search process")

	// ErrEmptyQuery is returned by Start for a blank query
	ErrEmptyQuery = errors.New("empty search query")
)
