package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akarpov/oilpulse/internal/logger"
	"github.com/akarpov/oilpulse/internal/storage"
)

// State tracks how far one date's ingestion got. Committed, Skipped and
// Failed are terminal.
type State string

const (
	StatePending        State = "pending"
	StateFetched        State = "fetched"
	StateRegionLocated  State = "region_located"
	StateRowsNormalized State = "rows_normalized"
	StateCommitted      State = "committed"
	StateSkipped        State = "skipped" // no report published for the date
	StateFailed         State = "failed"
)

// RowErrorPolicy decides what a row-normalization failure does to the rest
// of that date's rows.
type RowErrorPolicy string

const (
	// SkipRow drops the offending row, logs it, and continues the date.
	SkipRow RowErrorPolicy = "skip"
	// AbortDate fails the whole date on the first bad row.
	AbortDate RowErrorPolicy = "abort"
)

// DateResult is the outcome of one date's ingestion.
type DateResult struct {
	Date        time.Time
	State       State
	RowsCreated int
	RowsUpdated int
	RowsSkipped int
	Err         error
}

// Fetcher downloads one date's report. Implemented by ReportFetcher;
// narrowed to an interface so pipeline tests can stub the network.
type Fetcher interface {
	Fetch(ctx context.Context, d time.Time) (path string, found bool, err error)
}

// loadGrid is an indirection for reading the downloaded workbook; tests
// override it to feed grids without crafting BIFF files.
var loadGrid = LoadWorkbookGrid

// Pipeline orchestrates one ingestion run: for each date, fetch the report,
// bound the data region by markers, normalize each row and upsert it.
//
// Processing is strictly sequential: one date at a time, the fetch completes
// before parsing starts, and each row is upserted before the next is read.
// Every date is isolated; a failure is recorded in its DateResult and the
// run moves on.
type Pipeline struct {
	fetcher Fetcher
	repo    storage.SnapshotRepository
	policy  RowErrorPolicy
	now     func() time.Time
}

// NewPipeline wires a pipeline. The now function anchors the date range and
// defaults to time.Now; tests inject a fixed clock.
func NewPipeline(fetcher Fetcher, repo storage.SnapshotRepository, policy RowErrorPolicy, now func() time.Time) *Pipeline {
	if now == nil {
		now = time.Now
	}
	if policy == "" {
		policy = SkipRow
	}
	return &Pipeline{fetcher: fetcher, repo: repo, policy: policy, now: now}
}

// Run ingests days+1 dates walking from "now" in the given direction and
// returns one result per date, in processing order.
func (p *Pipeline) Run(ctx context.Context, days int, dir Direction) []DateResult {
	log := logger.With("ingestion")

	dates := DateRange(p.now(), days, dir)
	log.Info().Int("dates", len(dates)).Str("direction", string(dir)).Msg("run start")

	results := make([]DateResult, 0, len(dates))
	var committed, skipped, failed int
	for _, d := range dates {
		res := p.processDate(ctx, d)
		results = append(results, res)

		switch res.State {
		case StateCommitted:
			committed++
			log.Info().
				Str("date", d.Format("2006-01-02")).
				Int("created", res.RowsCreated).
				Int("updated", res.RowsUpdated).
				Int("bad_rows", res.RowsSkipped).
				Msg("date committed")
		case StateSkipped:
			skipped++
			log.Info().Str("date", d.Format("2006-01-02")).Msg("no report for date")
		case StateFailed:
			failed++
			log.Error().Str("date", d.Format("2006-01-02")).Err(res.Err).Msg("date failed")
		}
	}

	log.Info().
		Int("committed", committed).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("run done")
	return results
}

// processDate walks one date through the state machine.
func (p *Pipeline) processDate(ctx context.Context, d time.Time) DateResult {
	res := DateResult{Date: d, State: StatePending}

	fail := func(err error) DateResult {
		res.State = StateFailed
		res.Err = err
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	path, found, err := p.fetcher.Fetch(ctx, d)
	if err != nil {
		return fail(fmt.Errorf("fetch: %w", err))
	}
	if !found {
		// Expected absence: weekends and holidays have no report.
		res.State = StateSkipped
		return res
	}
	res.State = StateFetched

	grid, err := loadGrid(path)
	if err != nil {
		return fail(fmt.Errorf("load workbook: %w", err))
	}

	start, end, err := DataRegion(grid)
	if err != nil {
		return fail(fmt.Errorf("locate data region: %w", err))
	}
	res.State = StateRegionLocated

	log := logger.With("ingestion")
	for i := start; i < end; i++ {
		snapshot, err := newReportRow(grid, i).Snapshot(d)
		if err != nil {
			if p.policy == AbortDate {
				return fail(fmt.Errorf("row %d: %w", i, err))
			}
			res.RowsSkipped++
			log.Warn().
				Str("date", d.Format("2006-01-02")).
				Int("row", i).
				Err(err).
				Msg("row skipped")
			continue
		}
		res.State = StateRowsNormalized

		created, err := p.repo.UpsertSnapshot(snapshot)
		if err != nil {
			// DB failures are fatal for the date. Rows upserted before this
			// one stay committed: the transaction scope is per row.
			return fail(fmt.Errorf("row %d: upsert %s: %w", i, snapshot.InstrumentCode, err))
		}
		if created {
			res.RowsCreated++
		} else {
			res.RowsUpdated++
		}
	}

	res.State = StateCommitted
	return res
}

// RowErrorPolicyFromString maps the INGEST_ROW_ERRORS config value to a
// policy, defaulting to skip.
func RowErrorPolicyFromString(s string) (RowErrorPolicy, error) {
	switch s {
	case "", string(SkipRow):
		return SkipRow, nil
	case string(AbortDate):
		return AbortDate, nil
	default:
		return "", errors.New("row error policy must be \"skip\" or \"abort\"")
	}
}
