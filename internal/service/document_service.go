package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/popar-tracker/internal/cache"
	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/andresuchdata/popar-tracker/internal/items"
	"github.com/andresuchdata/popar-tracker/internal/money"
	"github.com/andresuchdata/popar-tracker/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ValidationError reports a payload the caller must fix. Err, when set, is
// the underlying domain error.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type DocumentService struct {
	repo      repository.DocumentRepository
	cache     cache.ForecastCache
	formatter *money.Formatter
	style     money.Style
	now       func() time.Time
}

func NewDocumentService(repo repository.DocumentRepository, cacheImpl cache.ForecastCache, formatter *money.Formatter, style money.Style) *DocumentService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	if formatter == nil {
		formatter = money.NewFormatter(money.DefaultGlyph)
	}
	return &DocumentService{
		repo:      repo,
		cache:     cacheImpl,
		formatter: formatter,
		style:     style,
		now:       time.Now,
	}
}

// Formatter exposes the currency formatter used for display strings.
func (s *DocumentService) Formatter() *money.Formatter {
	return s.formatter
}

// Style is the default words style for printed totals.
func (s *DocumentService) Style() money.Style {
	return s.style
}

// CreatePurchaseOrder stores a PO with only the items that carry a
// description and a total computed from the submitted items.
func (s *DocumentService) CreatePurchaseOrder(ctx context.Context, in domain.NewPurchaseOrder) (*domain.PurchaseOrder, error) {
	po, err := s.buildPurchaseOrder(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreatePurchaseOrder(ctx, po); err != nil {
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}

	s.invalidateForecasts(ctx)
	return po, nil
}

// ImportPurchaseOrders validates every PO of a batch and stores them in one
// transaction. Nothing is stored when any of them is rejected.
func (s *DocumentService) ImportPurchaseOrders(ctx context.Context, in []domain.NewPurchaseOrder) ([]*domain.PurchaseOrder, error) {
	pos := make([]*domain.PurchaseOrder, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, doc := range in {
		po, err := s.buildPurchaseOrder(doc)
		if err != nil {
			return nil, fmt.Errorf("purchase order %s: %w", doc.PONumber, err)
		}
		if err := checkUnique(seen, "po_number", po.PONumber); err != nil {
			return nil, err
		}
		pos = append(pos, po)
	}
	if len(pos) == 0 {
		return pos, nil
	}

	if err := s.repo.ImportPurchaseOrders(ctx, pos); err != nil {
		return nil, fmt.Errorf("failed to import purchase orders: %w", err)
	}

	s.invalidateForecasts(ctx)
	return pos, nil
}

func (s *DocumentService) buildPurchaseOrder(in domain.NewPurchaseOrder) (*domain.PurchaseOrder, error) {
	date, err := s.documentDate("po_date", in.PODate)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.PONumber) == "" {
		return nil, &ValidationError{Field: "po_number", Reason: "is required"}
	}

	summary := items.Aggregate(in.Items)
	logSummary(domain.KindPO, in.PONumber, summary)
	if err := s.checkPrintable(summary.Total); err != nil {
		return nil, err
	}

	return &domain.PurchaseOrder{
		PONumber:    strings.TrimSpace(in.PONumber),
		Supplier:    strings.TrimSpace(in.Supplier),
		PODate:      date,
		TotalAmount: summary.Total,
		Items:       summary.Included,
	}, nil
}

// CreatePropertyReceipt is CreatePurchaseOrder for PARs.
func (s *DocumentService) CreatePropertyReceipt(ctx context.Context, in domain.NewPropertyReceipt) (*domain.PropertyReceipt, error) {
	par, err := s.buildPropertyReceipt(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreatePropertyReceipt(ctx, par); err != nil {
		return nil, fmt.Errorf("failed to create property receipt: %w", err)
	}

	s.invalidateForecasts(ctx)
	return par, nil
}

// ImportPropertyReceipts is ImportPurchaseOrders for PARs.
func (s *DocumentService) ImportPropertyReceipts(ctx context.Context, in []domain.NewPropertyReceipt) ([]*domain.PropertyReceipt, error) {
	pars := make([]*domain.PropertyReceipt, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, doc := range in {
		par, err := s.buildPropertyReceipt(doc)
		if err != nil {
			return nil, fmt.Errorf("property receipt %s: %w", doc.PARNumber, err)
		}
		if err := checkUnique(seen, "par_number", par.PARNumber); err != nil {
			return nil, err
		}
		pars = append(pars, par)
	}
	if len(pars) == 0 {
		return pars, nil
	}

	if err := s.repo.ImportPropertyReceipts(ctx, pars); err != nil {
		return nil, fmt.Errorf("failed to import property receipts: %w", err)
	}

	s.invalidateForecasts(ctx)
	return pars, nil
}

func (s *DocumentService) buildPropertyReceipt(in domain.NewPropertyReceipt) (*domain.PropertyReceipt, error) {
	date, err := s.documentDate("par_date", in.PARDate)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.PARNumber) == "" {
		return nil, &ValidationError{Field: "par_number", Reason: "is required"}
	}

	summary := items.Aggregate(in.Items)
	logSummary(domain.KindPAR, in.PARNumber, summary)
	if err := s.checkPrintable(summary.Total); err != nil {
		return nil, err
	}

	return &domain.PropertyReceipt{
		PARNumber:   strings.TrimSpace(in.PARNumber),
		Recipient:   strings.TrimSpace(in.Recipient),
		PARDate:     date,
		TotalAmount: summary.Total,
		Items:       summary.Included,
	}, nil
}

func checkUnique(seen map[string]struct{}, field, number string) error {
	if _, dup := seen[number]; dup {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("%s appears more than once", number)}
	}
	seen[number] = struct{}{}
	return nil
}

// PrintPurchaseOrder loads a PO and prepares it for printing with the total
// recomputed from its stored items.
func (s *DocumentService) PrintPurchaseOrder(ctx context.Context, id int64, style money.Style) (*domain.PrintableDocument, error) {
	po, err := s.repo.GetPurchaseOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.printable(domain.KindPO, po.PONumber, po.Supplier, po.PODate, po.Items, style)
}

// PrintPropertyReceipt is PrintPurchaseOrder for PARs.
func (s *DocumentService) PrintPropertyReceipt(ctx context.Context, id int64, style money.Style) (*domain.PrintableDocument, error) {
	par, err := s.repo.GetPropertyReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.printable(domain.KindPAR, par.PARNumber, par.Recipient, par.PARDate, par.Items, style)
}

func (s *DocumentService) printable(kind domain.DocumentKind, number, party string, date time.Time, stored []domain.StoredItem, style money.Style) (*domain.PrintableDocument, error) {
	total := items.StoredTotal(stored)

	words, err := money.WordsFor(total, style)
	if err != nil {
		return nil, fmt.Errorf("failed to spell total of %s %s: %w", kind, number, err)
	}

	rows := make([]domain.PrintableItem, 0, len(stored))
	for _, item := range stored {
		rowTotal := items.RowTotal(item)
		rows = append(rows, domain.PrintableItem{
			StoredItem:      item,
			RowTotal:        rowTotal,
			UnitDisplay:     s.formatter.Format(item.UnitValue),
			RowTotalDisplay: s.formatter.Format(rowTotal),
		})
	}

	return &domain.PrintableDocument{
		Kind:         kind,
		Number:       number,
		Party:        party,
		Date:         date,
		Items:        rows,
		Total:        total,
		TotalDisplay: s.formatter.Format(total),
		TotalInWords: words,
	}, nil
}

// ItemTotal is the response of the form total calculator.
type ItemTotal struct {
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
	Included     int             `json:"included"`
	Excluded     int             `json:"excluded"`
}

// TotalItems computes the form total of raw items.
func (s *DocumentService) TotalItems(lines []domain.LineItem) ItemTotal {
	summary := items.Aggregate(lines)
	return ItemTotal{
		Total:        summary.Total,
		TotalDisplay: s.formatter.Format(summary.Total),
		Included:     len(summary.Included),
		Excluded:     summary.Excluded,
	}
}

// checkPrintable rejects totals the printed document cannot spell out.
func (s *DocumentService) checkPrintable(total decimal.Decimal) error {
	if _, err := money.WordsFor(total, s.style); err != nil {
		return &ValidationError{Field: "items", Reason: err.Error(), Err: err}
	}
	return nil
}

func (s *DocumentService) documentDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		now := s.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	date, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Reason: "must be a YYYY-MM-DD date"}
	}
	return date, nil
}

func (s *DocumentService) invalidateForecasts(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("documents: forecast cache invalidation failed")
	}
}

func logSummary(kind domain.DocumentKind, number string, summary items.Summary) {
	if summary.Excluded == 0 && summary.Defaulted == 0 {
		return
	}
	log.Debug().
		Str("kind", string(kind)).
		Str("number", number).
		Int("excluded", summary.Excluded).
		Int("defaulted", summary.Defaulted).
		Msg("documents: tolerated malformed line items")
}
