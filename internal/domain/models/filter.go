package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotFilter carries the listing query parameters down to the repository.
//
// Semantics:
//   - DateFrom/DateTo: inclusive bounds on Snapshot.Date; nil means unbounded.
//   - InstrumentCodes: OR-matched exact codes; empty means all.
//   - Product: substring match against the derived product name; empty means all.
//   - PriceFrom/PriceTo: inclusive bounds on MarketPrice. When either bound is
//     set, rows with a NULL market price are excluded so the filter stays
//     predictable.
//   - SortLabel: one of the whitelisted sort labels (resolved against a static
//     lookup table in storage; unknown labels fall back to the date column).
//   - Descending: sort direction; the secondary sort key is always
//     instrument_code ascending, so ordering is stable.
//   - Limit/Offset: page window; the API layer pages by 50.
type SnapshotFilter struct {
	DateFrom        *time.Time
	DateTo          *time.Time
	InstrumentCodes []string
	Product         string
	PriceFrom       *decimal.Decimal
	PriceTo         *decimal.Decimal

	SortLabel  string
	Descending bool

	Limit  int
	Offset int
}
