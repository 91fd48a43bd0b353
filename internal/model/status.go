package model

// TaskStatus represents the status of a download task
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusStarting means the task is in the process of starting
	TaskStatusStarting TaskStatus = "Starting"

	// TaskStatusDownloading means the download is in progress
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusStopping means the task is in the process of stopping
	TaskStatusStopping TaskStatus = "Stopping"

	// TaskStatusStopped means the task was stopped by user
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusStarting || ts == TaskStatusDownloading || ts == TaskStatusStopping
}

// IsFinished returns true if the task is in a finished state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}

// SessionState is the lifecycle state of one search session
type SessionState string

const (
	// SessionIdle means the session was created but the tool is not launched yet
	SessionIdle SessionState = "Idle"

	// SessionRunning means the search tool is running and results are streaming
	SessionRunning SessionState = "Running"

	// SessionStoppingRequested means a stop was requested (by user or timeout)
	// and the process tree is being terminated
	SessionStoppingRequested SessionState = "StoppingRequested"

	// SessionCompleted means the output was drained, naturally or after a stop
	SessionCompleted SessionState = "Completed"

	// SessionFailed means the search tool could not be launched
	SessionFailed SessionState = "Failed"
)

// String returns the string representation of SessionState
func (s SessionState) String() string {
	return string(s)
}

// IsActive returns true while the session owns a live process
func (s SessionState) IsActive() bool {
	return s == SessionRunning || s == SessionStoppingRequested
}

// IsTerminal returns true for states no transition leaves
func (s SessionState) IsTerminal() bool {
	return s == SessionCompleted || s == SessionFailed
}

// StopReason tells why a session left Running before its output was exhausted
type StopReason string

const (
	StopReasonNone    StopReason = ""
	StopReasonUser    StopReason = "user"
	StopReasonTimeout StopReason = "timeout"
)
