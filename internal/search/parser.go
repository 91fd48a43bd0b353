package search

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/ytget/yt-search/internal/model"
)

// record mirrors the subset of the yt-dlp info dict we display.
// view_count is decoded loosely: depending on the extractor it may be a
// number, a quoted number or null.
type record struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Uploader   string `json:"uploader"`
	ViewCount  any    `json:"view_count"`
	UploadDate string `json:"upload_date"`
}

// lineAPI keeps numbers inside interface values as json.Number so large
// view counts survive decoding
var lineAPI = sonic.Config{UseNumber: true}.Froze()

// IsCandidate reports whether a raw output line may hold a JSON record
func IsCandidate(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// ParseLine decodes one line of yt-dlp --print-json output.
// The second return value is false for non-JSON lines, malformed records
// and records without an id.
func ParseLine(line []byte) (model.SearchResult, bool) {
	if !IsCandidate(line) {
		return model.SearchResult{}, false
	}

	var rec record
	if err := lineAPI.Unmarshal(bytes.TrimSpace(line), &rec); err != nil {
		return model.SearchResult{}, false
	}
	if strings.TrimSpace(rec.ID) == "" {
		return model.SearchResult{}, false
	}

	return model.NewSearchResult(rec.ID, rec.Title, rec.Uploader, parseViewCount(rec.ViewCount), rec.UploadDate), true
}

// parseViewCount accepts numbers and quoted numbers; anything else is 0
func parseViewCount(v any) int64 {
	switch n := v.(type) {
	case json.Number:
		return numberToCount(n.String())
	case string:
		return numberToCount(strings.TrimSpace(n))
	}
	return 0
}

func numberToCount(s string) int64 {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatToCount(f)
	}
	return 0
}

func floatToCount(f float64) int64 {
	if f < 0 || f >= maxCountFloat {
		return 0
	}
	return int64(f)
}

const maxCountFloat = 9.2e18
