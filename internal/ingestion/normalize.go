package ingestion

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akarpov/oilpulse/internal/domain/models"
)

// Report cells use "-" (or nothing at all) for "no value", spaces as digit
// group separators and a comma as the decimal separator. Everything below
// normalizes that into typed values.

// ErrBadValue reports a cell that survived the dash-to-null rule but still
// cannot be parsed as its target type.
var ErrBadValue = errors.New("unparseable cell value")

// ErrMissingKey reports a row whose natural-key fields are absent; such a row
// cannot be persisted.
var ErrMissingKey = errors.New("missing required field")

// Fixed column layout of one data row (0-indexed). Column 0 is a row ordinal
// and is ignored.
const (
	colInstrumentCode = iota + 1
	colInstrumentName
	colDeliveryBasis
	colContractsVolumeEI
	colContractsVolumeRub
	colMarketChangeRub
	colMarketChangePct
	colMinPrice
	colAvgPrice
	colMaxPrice
	colMarketPrice
	colBestOffer
	colBestBid
	colContractsCount
)

// reportRow is the raw cell text of one data row, captured by a single
// positional mapping step. Downstream normalization works on named fields
// only and never touches column indices again.
type reportRow struct {
	InstrumentCode     string
	InstrumentName     string
	DeliveryBasis      string
	ContractsVolumeEI  string
	ContractsVolumeRub string
	MarketChangeRub    string
	MarketChangePct    string
	MinPrice           string
	AvgPrice           string
	MaxPrice           string
	MarketPrice        string
	BestOffer          string
	BestBid            string
	ContractsCount     string
}

// newReportRow maps one grid row into a reportRow. Short rows are tolerated:
// absent cells read as "" and fall under the dash-to-null rule later.
func newReportRow(g Grid, row int) reportRow {
	return reportRow{
		InstrumentCode:     g.Cell(row, colInstrumentCode),
		InstrumentName:     g.Cell(row, colInstrumentName),
		DeliveryBasis:      g.Cell(row, colDeliveryBasis),
		ContractsVolumeEI:  g.Cell(row, colContractsVolumeEI),
		ContractsVolumeRub: g.Cell(row, colContractsVolumeRub),
		MarketChangeRub:    g.Cell(row, colMarketChangeRub),
		MarketChangePct:    g.Cell(row, colMarketChangePct),
		MinPrice:           g.Cell(row, colMinPrice),
		AvgPrice:           g.Cell(row, colAvgPrice),
		MaxPrice:           g.Cell(row, colMaxPrice),
		MarketPrice:        g.Cell(row, colMarketPrice),
		BestOffer:          g.Cell(row, colBestOffer),
		BestBid:            g.Cell(row, colBestBid),
		ContractsCount:     g.Cell(row, colContractsCount),
	}
}

// dashToNull applies the dash sentinel rule: a value that trims to "" or "-"
// means "no value". Returns the trimmed value and whether it is present.
// This runs before any typed coercion and also serves optional string fields
// directly.
func dashToNull(v string) (string, bool) {
	s := strings.TrimSpace(v)
	if s == "" || s == "-" {
		return "", false
	}
	return s, true
}

// toDecimal coerces a report cell to an exact decimal.
//
// Interior spaces (digit grouping) are stripped and the comma decimal
// separator is replaced with a period before parsing. Parsing goes through
// the decimal string parser, never through a float, so digits survive
// exactly as printed.
func toDecimal(raw string) (decimal.NullDecimal, error) {
	s, ok := dashToNull(raw)
	if !ok {
		return decimal.NullDecimal{}, nil
	}

	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: invalid decimal %q", ErrBadValue, raw)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// toCount coerces a report cell to a non-negative integer, with the same
// null passthrough and space stripping as toDecimal.
func toCount(raw string) (sql.NullInt64, error) {
	s, ok := dashToNull(raw)
	if !ok {
		return sql.NullInt64{}, nil
	}

	s = strings.ReplaceAll(s, " ", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("%w: invalid integer %q", ErrBadValue, raw)
	}
	if n < 0 {
		return sql.NullInt64{}, fmt.Errorf("%w: negative contract count %q", ErrBadValue, raw)
	}
	return sql.NullInt64{Int64: n, Valid: true}, nil
}

// Snapshot normalizes the raw row into a persistable entity for the given
// date.
//
// InstrumentCode and InstrumentName must survive the dash-to-null rule and
// the date must be set; otherwise ErrMissingKey is returned and the caller
// decides whether to skip the row or abort the date.
func (r reportRow) Snapshot(date time.Time) (models.Snapshot, error) {
	code, okCode := dashToNull(r.InstrumentCode)
	name, okName := dashToNull(r.InstrumentName)
	if !okCode || !okName || date.IsZero() {
		return models.Snapshot{}, fmt.Errorf(
			"%w: instrument_code=%q instrument_name=%q date=%v", ErrMissingKey, r.InstrumentCode, r.InstrumentName, date)
	}

	s := models.Snapshot{
		InstrumentCode: code,
		InstrumentName: name,
		Date:           date,
		// product is derived: instrument name up to the first comma
		Product: strings.SplitN(name, ",", 2)[0],
	}

	if basis, ok := dashToNull(r.DeliveryBasis); ok {
		s.DeliveryBasis = sql.NullString{String: basis, Valid: true}
	}

	var err error
	decimals := []struct {
		raw  string
		dst  *decimal.NullDecimal
		name string
	}{
		{r.ContractsVolumeEI, &s.ContractsVolumeEI, "contracts_volume_ei"},
		{r.ContractsVolumeRub, &s.ContractsVolumeRub, "contracts_volume_rub"},
		{r.MarketChangeRub, &s.MarketChangeRub, "market_change_rub"},
		{r.MarketChangePct, &s.MarketChangePct, "market_change_pct"},
		{r.MinPrice, &s.MinPrice, "min_price"},
		{r.AvgPrice, &s.AvgPrice, "avg_price"},
		{r.MaxPrice, &s.MaxPrice, "max_price"},
		{r.MarketPrice, &s.MarketPrice, "market_price"},
		{r.BestOffer, &s.BestOffer, "best_offer"},
		{r.BestBid, &s.BestBid, "best_bid"},
	}
	for _, f := range decimals {
		if *f.dst, err = toDecimal(f.raw); err != nil {
			return models.Snapshot{}, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	if s.ContractsCount, err = toCount(r.ContractsCount); err != nil {
		return models.Snapshot{}, fmt.Errorf("contracts_count: %w", err)
	}

	return s, nil
}
