// Package items computes PO and PAR line item totals. Every total shown in a
// form, stored with a document or printed on one goes through Total.
package items

import (
	"encoding/json"

	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/andresuchdata/popar-tracker/internal/money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

const centavos = 2

// Summary is the result of aggregating a list of raw line items.
type Summary struct {
	Total decimal.Decimal
	// Included holds the normalized items that contributed to Total.
	Included []domain.StoredItem
	// Excluded counts items dropped for a blank description.
	Excluded int
	// Defaulted counts included items whose quantity or value had to be
	// defaulted because it was missing or unreadable.
	Defaulted int
}

// Total returns the sum of quantity * unit value over every item that does
// not carry a blank description.
func Total(items []domain.LineItem) decimal.Decimal {
	return Aggregate(items).Total
}

// Aggregate normalizes items and sums their row contributions.
func Aggregate(items []domain.LineItem) Summary {
	summary := Summary{Total: decimal.Zero}

	for _, item := range items {
		if item.HasBlankDescription() {
			summary.Excluded++
			continue
		}

		qty, qtyOK := Quantity(item)
		unit, unitOK := UnitValue(item)
		if !qtyOK || !unitOK {
			summary.Defaulted++
		}

		summary.Total = summary.Total.Add(unit.Mul(decimal.NewFromInt(qty)))
		summary.Included = append(summary.Included, domain.StoredItem{
			Description: item.DescriptionText(),
			Quantity:    qty,
			UnitValue:   unit,
		})
	}

	return summary
}

// Quantity returns the whole quantity of item, defaulting to 1 when it is
// absent, unreadable or not positive. ok is false when the default was used.
func Quantity(item domain.LineItem) (qty int64, ok bool) {
	if item.Quantity == nil {
		return 1, false
	}

	q := money.ToDecimal(item.Quantity).IntPart()
	if q <= 0 {
		return 1, false
	}
	return q, true
}

// UnitValue returns the amount of item, falling back to its unit cost when no
// amount was sent, rounded to centavos as documents store it. Unreadable
// values become 0; negative numbers pass through.
func UnitValue(item domain.LineItem) (value decimal.Decimal, ok bool) {
	raw := item.Amount
	if raw == nil {
		raw = item.UnitCost
	}
	if raw == nil {
		return decimal.Zero, false
	}

	v := money.ToDecimal(raw)
	if v.IsZero() && !isLiteralZero(raw) {
		return v, false
	}
	return v.Round(centavos), true
}

// RowTotal is the contribution of a stored item to its document total.
func RowTotal(item domain.StoredItem) decimal.Decimal {
	return item.UnitValue.Mul(decimal.NewFromInt(item.Quantity))
}

// StoredTotal recomputes a document total from persisted items.
func StoredTotal(stored []domain.StoredItem) decimal.Decimal {
	lines := make([]domain.LineItem, 0, len(stored))
	for _, s := range stored {
		var desc *string
		if s.Description != "" {
			d := s.Description
			desc = &d
		}
		lines = append(lines, domain.LineItem{
			Description: desc,
			Quantity:    s.Quantity,
			Amount:      s.UnitValue,
		})
	}
	return Total(lines)
}

func isLiteralZero(v any) bool {
	switch t := v.(type) {
	case string:
		return containsDigit(t) && money.Parse(t).IsZero()
	case json.Number:
		_, err := decimal.NewFromString(t.String())
		return err == nil
	case decimal.Decimal:
		return true
	case bool:
		return false
	}

	_, err := cast.ToFloat64E(v)
	return err == nil
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
