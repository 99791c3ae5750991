package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes purchase orders from property acknowledgement receipts.
type DocumentKind string

const (
	KindPO  DocumentKind = "po"
	KindPAR DocumentKind = "par"
)

// PurchaseOrder is a PO header with its items.
type PurchaseOrder struct {
	ID          int64           `json:"id" db:"id"`
	PONumber    string          `json:"po_number" db:"po_number"`
	Supplier    string          `json:"supplier" db:"supplier"`
	PODate      time.Time       `json:"po_date" db:"po_date"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	Items       []StoredItem    `json:"items" db:"-"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// PropertyReceipt is a PAR header with its items.
type PropertyReceipt struct {
	ID          int64           `json:"id" db:"id"`
	PARNumber   string          `json:"par_number" db:"par_number"`
	Recipient   string          `json:"recipient" db:"recipient"`
	PARDate     time.Time       `json:"par_date" db:"par_date"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	Items       []StoredItem    `json:"items" db:"-"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// StoredItem is a normalized, persisted line item.
type StoredItem struct {
	ID          int64           `json:"id" db:"id"`
	DocumentID  int64           `json:"document_id" db:"document_id"`
	Description string          `json:"description" db:"description"`
	Quantity    int64           `json:"quantity" db:"quantity"`
	UnitValue   decimal.Decimal `json:"unit_value" db:"unit_value"`
}

// PrintableItem is a stored item with its computed row total.
type PrintableItem struct {
	StoredItem
	RowTotal        decimal.Decimal `json:"row_total"`
	UnitDisplay     string          `json:"unit_display"`
	RowTotalDisplay string          `json:"row_total_display"`
}

// PrintableDocument is what the document renderer needs for a printed PO or PAR.
type PrintableDocument struct {
	Kind         DocumentKind    `json:"kind"`
	Number       string          `json:"number"`
	Party        string          `json:"party"`
	Date         time.Time       `json:"date"`
	Items        []PrintableItem `json:"items"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
	TotalInWords string          `json:"total_in_words"`
}

// DateLayout is the calendar date format accepted for document dates.
const DateLayout = "2006-01-02"

// NewPurchaseOrder is the payload for creating a PO.
type NewPurchaseOrder struct {
	PONumber string     `json:"po_number" binding:"required"`
	Supplier string     `json:"supplier" binding:"required"`
	PODate   string     `json:"po_date"`
	Items    []LineItem `json:"items"`
}

// NewPropertyReceipt is the payload for creating a PAR.
type NewPropertyReceipt struct {
	PARNumber string     `json:"par_number" binding:"required"`
	Recipient string     `json:"recipient" binding:"required"`
	PARDate   string     `json:"par_date"`
	Items     []LineItem `json:"items"`
}
