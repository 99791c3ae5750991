package repository

import (
	"context"
	"time"

	"github.com/andresuchdata/popar-tracker/internal/domain"
)

// HistoryRepository answers the monthly aggregate queries. Rows are grouped
// by year-month of the document date, ordered by period, and months without
// documents are simply absent.
type HistoryRepository interface {
	MonthlyPOAggregates(ctx context.Context, since time.Time) ([]domain.POAggregate, error)
	MonthlyPARAggregates(ctx context.Context, since time.Time) ([]domain.PARAggregate, error)
}

// DocumentRepository persists purchase orders and property receipts together
// with their items. Getters return domain.ErrNotFound for unknown IDs. The
// Import methods store a whole batch or nothing.
type DocumentRepository interface {
	CreatePurchaseOrder(ctx context.Context, po *domain.PurchaseOrder) error
	ImportPurchaseOrders(ctx context.Context, pos []*domain.PurchaseOrder) error
	GetPurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	CreatePropertyReceipt(ctx context.Context, par *domain.PropertyReceipt) error
	ImportPropertyReceipts(ctx context.Context, pars []*domain.PropertyReceipt) error
	GetPropertyReceipt(ctx context.Context, id int64) (*domain.PropertyReceipt, error)
}
