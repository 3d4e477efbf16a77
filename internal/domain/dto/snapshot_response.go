package dto

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/akarpov/oilpulse/internal/domain/models"
)

// SnapshotResponse is the JSON shape of one snapshot row in the listing.
//
// Nullable report cells (dash sentinel in the source file) are rendered as
// JSON null via pointer fields.
//
// swagger:model SnapshotResponse
type SnapshotResponse struct {
	ID             int64  `json:"id" example:"1"`
	InstrumentCode string `json:"instrument_code" example:"A100ANG060F"`
	InstrumentName string `json:"instrument_name" example:"Бензин (АИ-100-К5), ст. Ангарск"`
	Date           string `json:"date" example:"2025-08-29"`

	DeliveryBasis      *string          `json:"delivery_basis"`
	ContractsVolumeEI  *decimal.Decimal `json:"contracts_volume_ei"`
	ContractsVolumeRub *decimal.Decimal `json:"contracts_volume_rub"`
	MarketChangeRub    *decimal.Decimal `json:"market_change_rub"`
	MarketChangePct    *decimal.Decimal `json:"market_change_pct"`
	MinPrice           *decimal.Decimal `json:"min_price"`
	AvgPrice           *decimal.Decimal `json:"avg_price"`
	MaxPrice           *decimal.Decimal `json:"max_price"`
	MarketPrice        *decimal.Decimal `json:"market_price"`
	BestOffer          *decimal.Decimal `json:"best_offer"`
	BestBid            *decimal.Decimal `json:"best_bid"`
	ContractsCount     *int64           `json:"contracts_count"`

	Product string `json:"product" example:"Бензин (АИ-100-К5)"`
}

// SnapshotListResponse wraps one page of the listing together with paging info.
//
// swagger:model SnapshotListResponse
type SnapshotListResponse struct {
	Items    []SnapshotResponse `json:"items"`
	Total    int                `json:"total" example:"1234"`
	Page     int                `json:"page" example:"1"`
	PageSize int                `json:"page_size" example:"50"`
}

// NewSnapshotResponse converts a persisted snapshot into its API shape.
func NewSnapshotResponse(s models.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:                 s.ID,
		InstrumentCode:     s.InstrumentCode,
		InstrumentName:     s.InstrumentName,
		Date:               s.Date.Format("2006-01-02"),
		DeliveryBasis:      nullString(s.DeliveryBasis),
		ContractsVolumeEI:  nullDecimal(s.ContractsVolumeEI),
		ContractsVolumeRub: nullDecimal(s.ContractsVolumeRub),
		MarketChangeRub:    nullDecimal(s.MarketChangeRub),
		MarketChangePct:    nullDecimal(s.MarketChangePct),
		MinPrice:           nullDecimal(s.MinPrice),
		AvgPrice:           nullDecimal(s.AvgPrice),
		MaxPrice:           nullDecimal(s.MaxPrice),
		MarketPrice:        nullDecimal(s.MarketPrice),
		BestOffer:          nullDecimal(s.BestOffer),
		BestBid:            nullDecimal(s.BestBid),
		ContractsCount:     nullInt64(s.ContractsCount),
		Product:            s.Product,
	}
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullDecimal(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
