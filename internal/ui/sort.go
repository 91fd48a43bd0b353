package ui

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ytget/yt-search/internal/model"
)

// SortColumn identifies a sortable column of the results table
type SortColumn int

const (
	SortByTitle SortColumn = iota
	SortByUploader
	SortByViews
	SortByDate
)

// Columns lists the table columns in display order
var Columns = []SortColumn{SortByTitle, SortByUploader, SortByViews, SortByDate}

// SortState is the active column and its direction
type SortState struct {
	Column     SortColumn
	Descending bool
}

// DefaultSort shows the most viewed videos first
var DefaultSort = SortState{Column: SortByViews, Descending: true}

// Toggle returns the state after a click on col's header.
// A click on the active column flips the direction; a new column starts
// descending for numbers and dates, ascending for text.
func (s SortState) Toggle(col SortColumn) SortState {
	if s.Column == col {
		return SortState{Column: col, Descending: !s.Descending}
	}
	return SortState{Column: col, Descending: col == SortByViews || col == SortByDate}
}

// SortResults returns a sorted copy of results. Ties keep arrival order.
func SortResults(results []model.SearchResult, state SortState) []model.SearchResult {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b model.SearchResult) int {
		c := compareBy(state.Column, a, b)
		if state.Descending {
			return -c
		}
		return c
	})
	return sorted
}

func compareBy(col SortColumn, a, b model.SearchResult) int {
	switch col {
	case SortByTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortByUploader:
		return strings.Compare(strings.ToLower(a.Uploader), strings.ToLower(b.Uploader))
	case SortByDate:
		// YYYYMMDD sorts lexically; unknown dates go first ascending
		return strings.Compare(a.UploadDate, b.UploadDate)
	default:
		return cmp.Compare(a.ViewCount, b.ViewCount)
	}
}
