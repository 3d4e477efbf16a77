package storage

import (
	"database/sql"
	"fmt"
	"strings"

	pq "github.com/lib/pq"

	"github.com/akarpov/oilpulse/internal/domain/models"
)

// SnapshotRepository defines the contract for DB operations on trading
// snapshots and the product catalog.
type SnapshotRepository interface {
	// UpsertSnapshot persists one snapshot by its natural key
	// (instrument_code, instrument_name, date). Returns whether a new row
	// was created (false means an existing row was overwritten).
	UpsertSnapshot(s models.Snapshot) (created bool, err error)

	// ListSnapshots returns one page of snapshots matching the filter plus
	// the total match count for pagination.
	ListSnapshots(f models.SnapshotFilter) ([]models.Snapshot, int, error)

	// ListInstrumentCodes returns the distinct instrument codes present in
	// the store; the listing UI uses them as multi-select choices.
	ListInstrumentCodes() ([]string, error)

	CreateProduct(name string) (models.Product, error)
	ListProducts() ([]models.Product, error)
}

type snapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

// sortColumns is the whitelist of listing sort keys: external label to
// column name. Labels are the report's header captions plus the snake_case
// field names; anything else falls back to the date column.
var sortColumns = map[string]string{
	"Дата":                    "date",
	"КодИнструмента":          "instrument_code",
	"НаименованиеИнструмента": "instrument_name",
	"product":                 "product",
	"market_price":            "market_price",
	"min_price":               "min_price",
	"avg_price":               "avg_price",
	"max_price":               "max_price",
	"contracts_count":         "contracts_count",
	"contracts_volume_rub":    "contracts_volume_rub",
	"contracts_volume_ei":     "contracts_volume_ei",
}

// SortColumn resolves a sort label against the whitelist, defaulting to the
// date column for unknown labels.
func SortColumn(label string) string {
	if col, ok := sortColumns[label]; ok {
		return col
	}
	return "date"
}

const snapshotColumns = `id, instrument_code, instrument_name, delivery_basis,
	contracts_volume_ei, contracts_volume_rub, market_change_rub, market_change_pct,
	min_price, avg_price, max_price, market_price, best_offer, best_bid,
	contracts_count, date, product`

// UpsertSnapshot looks the row up by its natural key and either overwrites
// the non-key attributes or inserts a new row, inside one transaction.
//
// The transaction scope is one row, not one date batch: a failure midway
// through a day's ingestion leaves that day's earlier rows committed.
func (r *snapshotRepository) UpsertSnapshot(s models.Snapshot) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}

	var id int64
	err = tx.QueryRow(
		`SELECT id FROM snapshots WHERE instrument_code = $1 AND instrument_name = $2 AND date = $3 FOR UPDATE`,
		s.InstrumentCode, s.InstrumentName, s.Date,
	).Scan(&id)

	switch {
	case err == sql.ErrNoRows:
		_, err = tx.Exec(`
			INSERT INTO snapshots (
				instrument_code, instrument_name, date, delivery_basis,
				contracts_volume_ei, contracts_volume_rub, market_change_rub, market_change_pct,
				min_price, avg_price, max_price, market_price, best_offer, best_bid,
				contracts_count, product
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			s.InstrumentCode, s.InstrumentName, s.Date, s.DeliveryBasis,
			s.ContractsVolumeEI, s.ContractsVolumeRub, s.MarketChangeRub, s.MarketChangePct,
			s.MinPrice, s.AvgPrice, s.MaxPrice, s.MarketPrice, s.BestOffer, s.BestBid,
			s.ContractsCount, s.Product,
		)
		if err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("insert snapshot: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("commit: %w", err)
		}
		return true, nil

	case err != nil:
		_ = tx.Rollback()
		return false, fmt.Errorf("lookup snapshot: %w", err)

	default:
		_, err = tx.Exec(`
			UPDATE snapshots SET
				delivery_basis = $1,
				contracts_volume_ei = $2, contracts_volume_rub = $3,
				market_change_rub = $4, market_change_pct = $5,
				min_price = $6, avg_price = $7, max_price = $8, market_price = $9,
				best_offer = $10, best_bid = $11,
				contracts_count = $12, product = $13
			WHERE id = $14`,
			s.DeliveryBasis,
			s.ContractsVolumeEI, s.ContractsVolumeRub,
			s.MarketChangeRub, s.MarketChangePct,
			s.MinPrice, s.AvgPrice, s.MaxPrice, s.MarketPrice,
			s.BestOffer, s.BestBid,
			s.ContractsCount, s.Product,
			id,
		)
		if err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("update snapshot: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("commit: %w", err)
		}
		return false, nil
	}
}

// buildFilter renders the filter as a WHERE clause with positional
// placeholders and the matching args. Shared by the page query and the
// count query.
func buildFilter(f models.SnapshotFilter) (string, []interface{}) {
	conditions := []string{"TRUE"}
	var args []interface{}

	next := func() int { return len(args) + 1 }

	if f.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", next()))
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", next()))
		args = append(args, *f.DateTo)
	}
	if len(f.InstrumentCodes) > 0 {
		conditions = append(conditions, fmt.Sprintf("instrument_code = ANY($%d)", next()))
		args = append(args, pq.Array(f.InstrumentCodes))
	}
	if f.Product != "" {
		conditions = append(conditions, fmt.Sprintf("product LIKE '%%' || $%d || '%%'", next()))
		args = append(args, f.Product)
	}
	// Price bounds exclude NULL market prices so the filter stays predictable.
	if f.PriceFrom != nil {
		conditions = append(conditions, fmt.Sprintf("market_price IS NOT NULL AND market_price >= $%d", next()))
		args = append(args, *f.PriceFrom)
	}
	if f.PriceTo != nil {
		conditions = append(conditions, fmt.Sprintf("market_price IS NOT NULL AND market_price <= $%d", next()))
		args = append(args, *f.PriceTo)
	}

	return strings.Join(conditions, " AND "), args
}

// ListSnapshots runs the filtered, sorted, paginated listing query and a
// companion count query. Ordering is always stabilized by instrument_code
// as the secondary key.
func (r *snapshotRepository) ListSnapshots(f models.SnapshotFilter) ([]models.Snapshot, int, error) {
	where, args := buildFilter(f)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM snapshots WHERE %s`, where)
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count snapshots: %w", err)
	}

	dir := "ASC"
	if f.Descending {
		dir = "DESC"
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(
		`SELECT %s FROM snapshots WHERE %s ORDER BY %s %s, instrument_code ASC LIMIT %d OFFSET %d`,
		snapshotColumns, where, SortColumn(f.SortLabel), dir, limit, f.Offset,
	)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Snapshot
	for rows.Next() {
		var s models.Snapshot
		if err := rows.Scan(
			&s.ID, &s.InstrumentCode, &s.InstrumentName, &s.DeliveryBasis,
			&s.ContractsVolumeEI, &s.ContractsVolumeRub, &s.MarketChangeRub, &s.MarketChangePct,
			&s.MinPrice, &s.AvgPrice, &s.MaxPrice, &s.MarketPrice, &s.BestOffer, &s.BestBid,
			&s.ContractsCount, &s.Date, &s.Product,
		); err != nil {
			return nil, 0, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate snapshots: %w", err)
	}

	return out, total, nil
}

// ListInstrumentCodes returns distinct instrument codes, ordered, for the
// listing filter choices.
func (r *snapshotRepository) ListInstrumentCodes() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT instrument_code FROM snapshots ORDER BY instrument_code`)
	if err != nil {
		return nil, fmt.Errorf("list instrument codes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan instrument code: %w", err)
		}
		out = append(out, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instrument codes: %w", err)
	}
	return out, nil
}

// CreateProduct inserts a catalog product and returns it with its new id.
func (r *snapshotRepository) CreateProduct(name string) (models.Product, error) {
	var p models.Product
	p.Name = name
	err := r.db.QueryRow(`INSERT INTO products (name) VALUES ($1) RETURNING id`, name).Scan(&p.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// ListProducts returns the whole catalog, ordered by name.
func (r *snapshotRepository) ListProducts() ([]models.Product, error) {
	rows, err := r.db.Query(`SELECT id, name FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}
