package model

import "testing"

func TestTaskStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, false},
		{TaskStatusStarting, true},
		{TaskStatusDownloading, true},
		{TaskStatusStopping, true},
		{TaskStatusStopped, false},
		{TaskStatusCompleted, false},
		{TaskStatusError, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, false},
		{TaskStatusStarting, false},
		{TaskStatusDownloading, false},
		{TaskStatusStopping, false},
		{TaskStatusStopped, true},
		{TaskStatusCompleted, true},
		{TaskStatusError, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestSessionState_Predicates(t *testing.T) {
	tests := []struct {
		state    SessionState
		active   bool
		terminal bool
	}{
		{SessionIdle, false, false},
		{SessionRunning, true, false},
		{SessionStoppingRequested, true, false},
		{SessionCompleted, false, true},
		{SessionFailed, false, true},
	}

	for _, test := range tests {
		if got := test.state.IsActive(); got != test.active {
			t.Errorf("SessionState(%s).IsActive() = %v, expected %v", test.state, got, test.active)
		}
		if got := test.state.IsTerminal(); got != test.terminal {
			t.Errorf("SessionState(%s).IsTerminal() = %v, expected %v", test.state, got, test.terminal)
		}
	}
}

func TestEvent_IsTerminal(t *testing.T) {
	tests := []struct {
		event    Event
		expected bool
	}{
		{Event{Kind: EventStatusChanged, State: SessionCompleted}, true},
		{Event{Kind: EventStatusChanged, State: SessionFailed}, true},
		{Event{Kind: EventStatusChanged, State: SessionRunning}, false},
		{Event{Kind: EventTimedOut, State: SessionRunning}, false},
		{Event{Kind: EventItemFound, State: SessionCompleted}, false},
	}

	for _, test := range tests {
		if got := test.event.IsTerminal(); got != test.expected {
			t.Errorf("Event{%s,%s}.IsTerminal() = %v, expected %v", test.event.Kind, test.event.State, got, test.expected)
		}
	}
}

func TestSessionState_String(t *testing.T) {
	status := SessionStoppingRequested
	expected := "StoppingRequested"
	if result := status.String(); result != expected {
		t.Errorf("SessionState.String() = %s, expected %s", result, expected)
	}
}
