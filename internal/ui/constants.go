package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconStop     = "⏹"
	IconPending  = "⏳"
	IconFolder   = "📁"
	IconError    = "❌"
	IconSortUp   = "▲"
	IconSortDown = "▼"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Results table column widths
const (
	TitleColumnWidth    float32 = 420
	UploaderColumnWidth float32 = 180
	ViewsColumnWidth    float32 = 110
	DateColumnWidth     float32 = 100
)

// Layout sizing
const (
	WindowWidth        float32 = 960
	WindowHeight       float32 = 640
	StatusLabelWidth   float32 = 96
	PercentLabelWidth  float32 = 48
	DownloadsPanelMinH float32 = 140
	SettingsDialogW    float32 = 520
	SettingsDialogH    float32 = 460
)

// Timeouts for actions started from the window
const (
	PlaylistLoadTimeout = 2 * time.Minute
)

// URLs / parsing
const (
	PlaylistQueryParam = "list="
)
