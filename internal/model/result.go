package model

import (
	"fmt"
	"strconv"
	"strings"
)

// UploadDateLength is the length of a YYYYMMDD upload date token
const UploadDateLength = 8

// WatchURLTemplate builds a watch page URL from a video ID
const WatchURLTemplate = "https://www.youtube.com/watch?v=%s"

// SearchResult is one video record reported by the search tool.
// Values are never mutated after they have been published.
type SearchResult struct {
	ID         string
	Title      string
	Uploader   string
	ViewCount  int64
	UploadDate string // YYYYMMDD or empty
}

// NewSearchResult normalizes raw field values into a SearchResult.
// Negative view counts become 0 and malformed upload dates become empty.
func NewSearchResult(id, title, uploader string, viewCount int64, uploadDate string) SearchResult {
	if viewCount < 0 {
		viewCount = 0
	}
	uploadDate = strings.TrimSpace(uploadDate)
	if len(uploadDate) != UploadDateLength {
		uploadDate = ""
	}
	return SearchResult{
		ID:         id,
		Title:      title,
		Uploader:   uploader,
		ViewCount:  viewCount,
		UploadDate: uploadDate,
	}
}

// WatchURL returns the watch page URL of the video
func (r SearchResult) WatchURL() string {
	return fmt.Sprintf(WatchURLTemplate, r.ID)
}

// FormattedDate returns the upload date as YYYY.MM.DD, or "" if unknown
func (r SearchResult) FormattedDate() string {
	if len(r.UploadDate) != UploadDateLength {
		return ""
	}
	return r.UploadDate[:4] + "." + r.UploadDate[4:6] + "." + r.UploadDate[6:]
}

// FormattedViews returns the view count with thousands separators (1,234,567)
func (r SearchResult) FormattedViews() string {
	digits := strconv.FormatInt(r.ViewCount, 10)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// GetDisplayTitle returns the title, or the video ID when the title is empty
func (r SearchResult) GetDisplayTitle() string {
	if strings.TrimSpace(r.Title) != "" {
		return r.Title
	}
	return r.ID
}
