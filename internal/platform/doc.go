// Package platform contains OS integration and external tooling glue:
// filesystem helpers, tool lookup, the media player and browser/folder
// launchers, and playlist listing.
package platform
