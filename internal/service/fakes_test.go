package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/andresuchdata/popar-tracker/internal/domain"
)

// numeric rounds money the way a NUMERIC(18,2) column does on insert.
func numeric(items []domain.StoredItem) []domain.StoredItem {
	out := make([]domain.StoredItem, len(items))
	for i, it := range items {
		it.UnitValue = it.UnitValue.Round(2)
		out[i] = it
	}
	return out
}

type fakeLoader struct {
	history  []domain.PeriodRecord
	err      error
	calls    int
	lookback int
}

func (f *fakeLoader) Load(_ context.Context, lookbackMonths int) ([]domain.PeriodRecord, error) {
	f.calls++
	f.lookback = lookbackMonths
	return f.history, f.err
}

type memoryCache struct {
	mu          sync.Mutex
	entries     map[domain.ForecastRequest]*domain.ForecastResponse
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[domain.ForecastRequest]*domain.ForecastResponse{}}
}

func (c *memoryCache) Get(_ context.Context, req domain.ForecastRequest) (*domain.ForecastResponse, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	resp, ok := c.entries[req]
	return resp, ok, nil
}

func (c *memoryCache) Set(_ context.Context, req domain.ForecastRequest, resp *domain.ForecastResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[req] = resp
	return nil
}

func (c *memoryCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[domain.ForecastRequest]*domain.ForecastResponse{}
	c.invalidated++
	return nil
}

type memoryDocuments struct {
	mu   sync.Mutex
	pos  map[int64]domain.PurchaseOrder
	pars map[int64]domain.PropertyReceipt
	next int64
}

func newMemoryDocuments() *memoryDocuments {
	return &memoryDocuments{
		pos:  map[int64]domain.PurchaseOrder{},
		pars: map[int64]domain.PropertyReceipt{},
	}
}

func (m *memoryDocuments) CreatePurchaseOrder(_ context.Context, po *domain.PurchaseOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertPurchaseOrder(po)
}

// ImportPurchaseOrders checks every number before storing any, like a
// rolled back transaction would leave the tables.
func (m *memoryDocuments) ImportPurchaseOrders(_ context.Context, pos []*domain.PurchaseOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, po := range pos {
		if m.hasPONumber(po.PONumber) {
			return fmt.Errorf("duplicate po_number %s", po.PONumber)
		}
	}
	for _, po := range pos {
		if err := m.insertPurchaseOrder(po); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryDocuments) hasPONumber(number string) bool {
	for _, po := range m.pos {
		if po.PONumber == number {
			return true
		}
	}
	return false
}

func (m *memoryDocuments) insertPurchaseOrder(po *domain.PurchaseOrder) error {
	if m.hasPONumber(po.PONumber) {
		return fmt.Errorf("duplicate po_number %s", po.PONumber)
	}
	m.next++
	po.ID = m.next
	for i := range po.Items {
		po.Items[i].DocumentID = po.ID
	}
	row := *po
	row.TotalAmount = row.TotalAmount.Round(2)
	row.Items = numeric(po.Items)
	m.pos[po.ID] = row
	return nil
}

func (m *memoryDocuments) GetPurchaseOrder(_ context.Context, id int64) (*domain.PurchaseOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	po, ok := m.pos[id]
	if !ok {
		return nil, fmt.Errorf("purchase order %d: %w", id, domain.ErrNotFound)
	}
	return &po, nil
}

func (m *memoryDocuments) CreatePropertyReceipt(_ context.Context, par *domain.PropertyReceipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertPropertyReceipt(par)
	return nil
}

func (m *memoryDocuments) ImportPropertyReceipts(_ context.Context, pars []*domain.PropertyReceipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, par := range pars {
		m.insertPropertyReceipt(par)
	}
	return nil
}

func (m *memoryDocuments) insertPropertyReceipt(par *domain.PropertyReceipt) {
	m.next++
	par.ID = m.next
	row := *par
	row.TotalAmount = row.TotalAmount.Round(2)
	row.Items = numeric(par.Items)
	m.pars[par.ID] = row
}

func (m *memoryDocuments) GetPropertyReceipt(_ context.Context, id int64) (*domain.PropertyReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	par, ok := m.pars[id]
	if !ok {
		return nil, fmt.Errorf("property receipt %d: %w", id, domain.ErrNotFound)
	}
	return &par, nil
}
