// Package search supervises one external yt-dlp search at a time.
//
// A Supervisor launches the tool, reads its newline-delimited JSON output
// incrementally, publishes every parsed record as an event, enforces an
// inactivity timeout and tears the whole process tree down on cancel.
// Events are delivered to an EventSink which is responsible for moving
// them onto its own execution context.
package search
