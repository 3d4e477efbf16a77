package ingestion

import (
	"errors"
	"fmt"
	"strings"
)

// The reports carry no machine-readable structure; the data table is bounded
// by two known text markers in column B. Both are matched case-insensitively
// after trimming, against the original Russian cell text.
const (
	// headerMarker sits a fixed number of rows above the first data row.
	headerMarker = "Единица измерения: Метрическая тонна"
	// totalMarker is the footer line right below the last data row.
	totalMarker = "Итого:"

	// headerOffset is the distance from the header marker to the first data
	// row (marker line, blank line, two header lines).
	headerOffset = 4

	// markerColumn is column B, where both markers live.
	markerColumn = 1
)

// ErrMarkerNotFound reports that a structural marker is absent, which makes
// the file unparseable: without both markers the data region cannot be
// bounded.
var ErrMarkerNotFound = errors.New("marker not found")

// LocateOptions tunes LocateMarker. The zero value searches column B from
// row 0 for an exact (normalized) match.
type LocateOptions struct {
	Column     int  // 0-indexed column; markers live in column B (1)
	StartIndex int  // first row index to consider
	Contains   bool // substring match instead of exact equality
}

// LocateMarker scans one grid column for the first row at or after
// opt.StartIndex whose trimmed, lower-cased text matches the marker the same
// way. Returns the row index, or ErrMarkerNotFound.
func LocateMarker(g Grid, marker string, opt LocateOptions) (int, error) {
	m := strings.ToLower(strings.TrimSpace(marker))

	for i := opt.StartIndex; i < len(g); i++ {
		cell := strings.ToLower(strings.TrimSpace(g.Cell(i, opt.Column)))
		if opt.Contains {
			if strings.Contains(cell, m) {
				return i, nil
			}
		} else if cell == m {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q in column %d from row %d", ErrMarkerNotFound, marker, opt.Column, opt.StartIndex)
}

// DataRegion bounds the data table inside a report grid.
//
// The region is the half-open row range [start, end): start is headerOffset
// rows past the header marker, end is the totals line searched from start.
func DataRegion(g Grid) (start, end int, err error) {
	hdr, err := LocateMarker(g, headerMarker, LocateOptions{Column: markerColumn})
	if err != nil {
		return 0, 0, fmt.Errorf("header marker: %w", err)
	}

	start = hdr + headerOffset
	end, err = LocateMarker(g, totalMarker, LocateOptions{Column: markerColumn, StartIndex: start})
	if err != nil {
		return 0, 0, fmt.Errorf("total marker: %w", err)
	}
	return start, end, nil
}
