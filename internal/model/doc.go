// Package model defines domain data structures used across the app: search
// results, search session states and events, download tasks and their status
// enums. Structures are plain values designed for direct use by the UI and
// explicit state transitions.
package model
