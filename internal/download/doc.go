// Package download runs yt-dlp downloads of search results (via
// github.com/lrstanley/go-ytdlp). It manages the task lifecycle, a
// parallelism limit and progress propagation to the UI.
package download
