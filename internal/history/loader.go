// Package history turns the monthly PO and PAR aggregate queries into the
// ordered series consumed by the forecast package.
package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/andresuchdata/popar-tracker/internal/forecast"
	"github.com/andresuchdata/popar-tracker/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultLookbackMonths is used when a caller asks for zero or fewer months.
const DefaultLookbackMonths = 12

type Loader struct {
	repo     repository.HistoryRepository
	zeroFill bool
	now      func() time.Time
}

type Option func(*Loader)

// WithZeroFill controls whether months missing between the first and last
// observed period are inserted as zero records. Enabled by default.
func WithZeroFill(enabled bool) Option {
	return func(l *Loader) {
		l.zeroFill = enabled
	}
}

// WithClock overrides the time source used to compute the query window.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		l.now = now
	}
}

func NewLoader(repo repository.HistoryRepository, opts ...Option) *Loader {
	l := &Loader{
		repo:     repo,
		zeroFill: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Since returns the first instant included in a lookback window ending now:
// the start of the month lookbackMonths before the current one.
func (l *Loader) Since(lookbackMonths int) time.Time {
	if lookbackMonths <= 0 {
		lookbackMonths = DefaultLookbackMonths
	}
	return forecast.AddMonths(forecast.MonthStart(l.now()), -lookbackMonths)
}

// Load returns the merged monthly history for the window, ascending by
// period. It fails with domain.ErrDataUnavailable when both queries come back
// empty.
func (l *Loader) Load(ctx context.Context, lookbackMonths int) ([]domain.PeriodRecord, error) {
	since := l.Since(lookbackMonths)

	var (
		poRows  []domain.POAggregate
		parRows []domain.PARAggregate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := l.repo.MonthlyPOAggregates(gctx, since)
		if err != nil {
			return fmt.Errorf("failed to load po aggregates: %w", err)
		}
		poRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := l.repo.MonthlyPARAggregates(gctx, since)
		if err != nil {
			return fmt.Errorf("failed to load par aggregates: %w", err)
		}
		parRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(poRows) == 0 && len(parRows) == 0 {
		return nil, domain.ErrDataUnavailable
	}

	records, err := Merge(poRows, parRows)
	if err != nil {
		return nil, err
	}

	if l.zeroFill {
		filled, err := ZeroFill(records)
		if err != nil {
			return nil, err
		}
		if added := len(filled) - len(records); added > 0 {
			log.Debug().
				Int("missing_months", added).
				Str("since", forecast.PeriodOf(since)).
				Msg("history: zero-filled months without activity")
		}
		records = filled
	}

	return records, nil
}

// Merge left-merges PO and PAR rows on their period key. A period present on
// only one side keeps zeroes for the other. Demand is derived for every
// record and the result is sorted ascending.
func Merge(poRows []domain.POAggregate, parRows []domain.PARAggregate) ([]domain.PeriodRecord, error) {
	byPeriod := make(map[string]*domain.PeriodRecord, len(poRows)+len(parRows))

	get := func(period string) (*domain.PeriodRecord, error) {
		if r, ok := byPeriod[period]; ok {
			return r, nil
		}
		if _, err := forecast.ParsePeriod(period); err != nil {
			return nil, err
		}
		r := &domain.PeriodRecord{Period: period}
		byPeriod[period] = r
		return r, nil
	}

	for _, row := range poRows {
		r, err := get(row.Period)
		if err != nil {
			return nil, err
		}
		r.POCount = row.POCount
		r.POAmount = row.POAmount
		r.SupplierCount = row.SupplierCount
	}

	for _, row := range parRows {
		r, err := get(row.Period)
		if err != nil {
			return nil, err
		}
		r.PARCount = row.PARCount
		r.PARAmount = row.PARAmount
		r.RecipientCount = row.RecipientCount
	}

	records := make([]domain.PeriodRecord, 0, len(byPeriod))
	for _, r := range byPeriod {
		r.Demand = domain.DemandOf(r.POCount, r.PARCount)
		records = append(records, *r)
	}

	// YYYY-MM keys sort chronologically as strings
	sort.Slice(records, func(i, j int) bool {
		return records[i].Period < records[j].Period
	})

	return records, nil
}

// ZeroFill inserts an all-zero record for every month missing between the
// first and last record of sorted. Months before the first or after the last
// record are never added.
func ZeroFill(sorted []domain.PeriodRecord) ([]domain.PeriodRecord, error) {
	if len(sorted) < 2 {
		return sorted, nil
	}

	first, err := forecast.ParsePeriod(sorted[0].Period)
	if err != nil {
		return nil, err
	}
	last, err := forecast.ParsePeriod(sorted[len(sorted)-1].Period)
	if err != nil {
		return nil, err
	}

	span := forecast.MonthsBetween(first, last) + 1
	if span == len(sorted) {
		return sorted, nil
	}

	out := make([]domain.PeriodRecord, 0, span)
	next := 0
	for i := 0; i < span; i++ {
		period := forecast.PeriodOf(forecast.AddMonths(first, i))
		if next < len(sorted) && sorted[next].Period == period {
			out = append(out, sorted[next])
			next++
			continue
		}
		out = append(out, domain.PeriodRecord{Period: period})
	}

	return out, nil
}
