package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// The window runs searches through the search supervisor and shows their
// results in a sortable table; result actions go to the platform and download
// services. All UI strings are localized via Localization.
