package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot represents one instrument's trading summary for one calendar date,
// as published in the exchange's daily oil trading-results spreadsheet.
//
// The (InstrumentCode, InstrumentName, Date) triple is the natural key: the
// ingestion pipeline upserts on it, so re-running a day overwrites the
// non-key attributes instead of duplicating rows.
//
// Source column order in the report (0-indexed, column 0 is a row ordinal):
//
//	 1 InstrumentCode
//	 2 InstrumentName
//	 3 DeliveryBasis
//	 4 ContractsVolumeEI   (volume in units of measure, 6 fractional digits)
//	 5 ContractsVolumeRub  (volume in rubles, 2 fractional digits)
//	 6 MarketChangeRub
//	 7 MarketChangePct     (4 fractional digits)
//	 8 MinPrice
//	 9 AvgPrice
//	10 MaxPrice
//	11 MarketPrice
//	12 BestOffer
//	13 BestBid
//	14 ContractsCount
//
// Product is not read from a column: it is the part of InstrumentName before
// the first comma.
type Snapshot struct {
	ID             int64
	InstrumentCode string
	InstrumentName string
	Date           time.Time

	DeliveryBasis      sql.NullString
	ContractsVolumeEI  decimal.NullDecimal
	ContractsVolumeRub decimal.NullDecimal
	MarketChangeRub    decimal.NullDecimal
	MarketChangePct    decimal.NullDecimal
	MinPrice           decimal.NullDecimal
	AvgPrice           decimal.NullDecimal
	MaxPrice           decimal.NullDecimal
	MarketPrice        decimal.NullDecimal
	BestOffer          decimal.NullDecimal
	BestBid            decimal.NullDecimal
	ContractsCount     sql.NullInt64

	Product string
}
