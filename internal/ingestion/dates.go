package ingestion

import "time"

// Direction controls which way DateRange walks from its anchor date.
type Direction string

const (
	// Past walks backwards: anchor, anchor-1d, anchor-2d, ...
	Past Direction = "past"
	// Future walks forwards: anchor, anchor+1d, anchor+2d, ...
	Future Direction = "future"
)

// DateRange returns days+1 calendar dates starting at the anchor (inclusive),
// stepping one day per entry in the given direction. The anchor is truncated
// to midnight so downstream date comparisons are exact.
//
// The anchor is an explicit parameter on purpose: callers that want "today"
// pass their clock's current time, which keeps the generator testable.
func DateRange(anchor time.Time, days int, dir Direction) []time.Time {
	if days < 0 {
		days = 0
	}
	step := -1
	if dir == Future {
		step = 1
	}

	start := truncateToDate(anchor)
	out := make([]time.Time, 0, days+1)
	for i := 0; i <= days; i++ {
		out = append(out, start.AddDate(0, 0, step*i))
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
