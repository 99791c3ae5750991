package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/jmoiron/sqlx"
)

type documentRepository struct {
	db *DB
}

func NewDocumentRepository(db *DB) *documentRepository {
	return &documentRepository{db: db}
}

// documentTables names the header and item tables of one document kind.
type documentTables struct {
	header     string
	items      string
	foreignKey string
	unitColumn string
}

var (
	poTables = documentTables{
		header:     "purchase_orders",
		items:      "po_items",
		foreignKey: "po_id",
		unitColumn: "unit_cost",
	}
	parTables = documentTables{
		header:     "property_receipts",
		items:      "par_items",
		foreignKey: "par_id",
		unitColumn: "amount",
	}
)

func (r *documentRepository) CreatePurchaseOrder(ctx context.Context, po *domain.PurchaseOrder) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return insertPurchaseOrder(ctx, tx, po)
	})
}

func (r *documentRepository) ImportPurchaseOrders(ctx context.Context, pos []*domain.PurchaseOrder) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, po := range pos {
			if err := insertPurchaseOrder(ctx, tx, po); err != nil {
				return fmt.Errorf("purchase order %s: %w", po.PONumber, err)
			}
		}
		return nil
	})
}

func (r *documentRepository) CreatePropertyReceipt(ctx context.Context, par *domain.PropertyReceipt) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return insertPropertyReceipt(ctx, tx, par)
	})
}

func (r *documentRepository) ImportPropertyReceipts(ctx context.Context, pars []*domain.PropertyReceipt) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, par := range pars {
			if err := insertPropertyReceipt(ctx, tx, par); err != nil {
				return fmt.Errorf("property receipt %s: %w", par.PARNumber, err)
			}
		}
		return nil
	})
}

func insertPurchaseOrder(ctx context.Context, tx *sql.Tx, po *domain.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (po_number, supplier, po_date, total_amount, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	if err := tx.QueryRowContext(ctx, query, po.PONumber, po.Supplier, po.PODate, po.TotalAmount).
		Scan(&po.ID, &po.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert purchase order: %w", err)
	}

	return insertItems(ctx, tx, poTables, po.ID, po.Items)
}

func insertPropertyReceipt(ctx context.Context, tx *sql.Tx, par *domain.PropertyReceipt) error {
	query := `
		INSERT INTO property_receipts (par_number, recipient, par_date, total_amount, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	if err := tx.QueryRowContext(ctx, query, par.PARNumber, par.Recipient, par.PARDate, par.TotalAmount).
		Scan(&par.ID, &par.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert property receipt: %w", err)
	}

	return insertItems(ctx, tx, parTables, par.ID, par.Items)
}

func insertItems(ctx context.Context, tx *sql.Tx, t documentTables, documentID int64, items []domain.StoredItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, description, quantity, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, t.items, t.foreignKey, t.unitColumn)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := range items {
		item := &items[i]
		item.DocumentID = documentID
		if err := stmt.QueryRowContext(ctx, documentID, item.Description, item.Quantity, item.UnitValue).
			Scan(&item.ID); err != nil {
			return fmt.Errorf("failed to insert %s row: %w", t.items, err)
		}
	}

	return nil
}

func (r *documentRepository) GetPurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	query := `
		SELECT id, po_number, supplier, po_date, total_amount, created_at
		FROM purchase_orders
		WHERE id = $1
	`

	var po domain.PurchaseOrder
	if err := sqlx.GetContext(ctx, r.db, &po, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("purchase order %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}

	items, err := r.listItems(ctx, poTables, id)
	if err != nil {
		return nil, err
	}
	po.Items = items

	return &po, nil
}

func (r *documentRepository) GetPropertyReceipt(ctx context.Context, id int64) (*domain.PropertyReceipt, error) {
	query := `
		SELECT id, par_number, recipient, par_date, total_amount, created_at
		FROM property_receipts
		WHERE id = $1
	`

	var par domain.PropertyReceipt
	if err := sqlx.GetContext(ctx, r.db, &par, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("property receipt %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get property receipt: %w", err)
	}

	items, err := r.listItems(ctx, parTables, id)
	if err != nil {
		return nil, err
	}
	par.Items = items

	return &par, nil
}

func (r *documentRepository) listItems(ctx context.Context, t documentTables, documentID int64) ([]domain.StoredItem, error) {
	query := fmt.Sprintf(`
		SELECT id, %[2]s AS document_id, description, quantity, %[3]s AS unit_value
		FROM %[1]s
		WHERE %[2]s = $1
		ORDER BY id ASC
	`, t.items, t.foreignKey, t.unitColumn)

	var items []domain.StoredItem
	if err := sqlx.SelectContext(ctx, r.db, &items, query, documentID); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.items, err)
	}

	return items, nil
}
