package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type historyRepository struct {
	db *DB
}

func NewHistoryRepository(db *DB) *historyRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) MonthlyPOAggregates(ctx context.Context, since time.Time) ([]domain.POAggregate, error) {
	query := `
        SELECT
            to_char(date_trunc('month', po.po_date), 'YYYY-MM') AS period,
            COUNT(*) AS po_count,
            COALESCE(SUM(po.total_amount), 0)::float8 AS po_amount,
            COUNT(DISTINCT po.supplier) AS supplier_count
        FROM purchase_orders po
        WHERE po.po_date >= $1
        GROUP BY date_trunc('month', po.po_date)
        ORDER BY date_trunc('month', po.po_date)
    `

	var rows []domain.POAggregate
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, since); err != nil {
		return nil, fmt.Errorf("failed to query monthly po aggregates: %w", err)
	}

	log.Debug().
		Time("since", since).
		Int("rows", len(rows)).
		Msg("history repo: loaded po aggregates")

	return rows, nil
}

func (r *historyRepository) MonthlyPARAggregates(ctx context.Context, since time.Time) ([]domain.PARAggregate, error) {
	query := `
        SELECT
            to_char(date_trunc('month', par.par_date), 'YYYY-MM') AS period,
            COUNT(*) AS par_count,
            COALESCE(SUM(par.total_amount), 0)::float8 AS par_amount,
            COUNT(DISTINCT par.recipient) AS recipient_count
        FROM property_receipts par
        WHERE par.par_date >= $1
        GROUP BY date_trunc('month', par.par_date)
        ORDER BY date_trunc('month', par.par_date)
    `

	var rows []domain.PARAggregate
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, since); err != nil {
		return nil, fmt.Errorf("failed to query monthly par aggregates: %w", err)
	}

	log.Debug().
		Time("since", since).
		Int("rows", len(rows)).
		Msg("history repo: loaded par aggregates")

	return rows, nil
}
