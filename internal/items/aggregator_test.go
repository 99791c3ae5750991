package items

import (
	"encoding/json"
	"testing"

	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

func decodeItems(t *testing.T, raw string) []domain.LineItem {
	t.Helper()
	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		t.Fatalf("failed to decode items: %v", err)
	}
	return items
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "currency string and excluded blank row",
			raw:  `[{"quantity":2,"amount":"₱1,000.00"},{"quantity":0,"amount":50,"description":""}]`,
			want: "2000",
		},
		{
			name: "zero quantity on included item defaults to one",
			raw:  `[{"description":"Office chair","quantity":0,"amount":50}]`,
			want: "50",
		},
		{
			name: "synonymous field names",
			raw:  `[{"item_description":"Ballpen","qty":"3","unit_cost":"10.50"}]`,
			want: "31.5",
		},
		{
			name: "amount wins over unit cost",
			raw:  `[{"description":"Desk","amount":5,"unit_cost":7}]`,
			want: "5",
		},
		{
			name: "null amount falls back to unit cost",
			raw:  `[{"description":"Desk","amount":null,"unit_price":7}]`,
			want: "7",
		},
		{
			name: "whitespace description excluded",
			raw:  `[{"description":"   ","quantity":10,"amount":100},{"description":"Paper","quantity":4,"amount":"25"}]`,
			want: "100",
		},
		{
			name: "malformed values default",
			raw:  `[{"description":"Unknown","quantity":"abc","amount":"xyz"}]`,
			want: "0",
		},
		{
			name: "fractional quantity truncated",
			raw:  `[{"description":"Bond paper","quantity":"2.9","amount":10}]`,
			want: "20",
		},
		{
			name: "unit value rounded to centavos before multiplying",
			raw:  `[{"description":"Bond paper","quantity":3,"amount":"0.335"}]`,
			want: "1.02",
		},
		{
			name: "negative amount passes through",
			raw:  `[{"description":"Refund","quantity":1,"amount":-20},{"description":"Toner","quantity":1,"amount":120}]`,
			want: "100",
		},
		{
			name: "empty list",
			raw:  `[]`,
			want: "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Total(decodeItems(t, tc.raw))
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("Total() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestAggregateCounts(t *testing.T) {
	items := decodeItems(t, `[
		{"description":"Stapler","quantity":1,"amount":"150"},
		{"description":"","quantity":3,"amount":"10"},
		{"description":"Folder","amount":"abc"}
	]`)

	summary := Aggregate(items)
	if summary.Excluded != 1 {
		t.Errorf("expected 1 excluded item, got %d", summary.Excluded)
	}
	if summary.Defaulted != 1 {
		t.Errorf("expected 1 defaulted item, got %d", summary.Defaulted)
	}
	if len(summary.Included) != 2 {
		t.Fatalf("expected 2 included items, got %d", len(summary.Included))
	}
	if summary.Included[1].Quantity != 1 {
		t.Errorf("expected missing quantity to default to 1, got %d", summary.Included[1].Quantity)
	}
}

func TestLiteralZeroAmountIsNotDefaulted(t *testing.T) {
	items := decodeItems(t, `[{"description":"Donated monitor","quantity":1,"amount":"0.00"}]`)
	if summary := Aggregate(items); summary.Defaulted != 0 {
		t.Errorf("explicit zero amount should not count as defaulted, got %d", summary.Defaulted)
	}
}

func TestStoredTotalAgreesWithTotal(t *testing.T) {
	items := decodeItems(t, `[
		{"quantity":2,"amount":"₱1,000.00"},
		{"description":"Projector","quantity":"1","unit_cost":"35,499.75"},
		{"description":"","quantity":5,"amount":1}
	]`)

	summary := Aggregate(items)
	stored := StoredTotal(summary.Included)
	if !stored.Equal(summary.Total) {
		t.Errorf("stored total %s differs from submitted total %s", stored, summary.Total)
	}

	var sum decimal.Decimal
	for _, it := range summary.Included {
		sum = sum.Add(RowTotal(it))
	}
	if !sum.Equal(summary.Total) {
		t.Errorf("row totals add up to %s, want %s", sum, summary.Total)
	}
}

func TestIncludedItemsKeepCentavos(t *testing.T) {
	items := decodeItems(t, `[{"description":"Ink","quantity":7,"unit_cost":"12.3456"}]`)

	summary := Aggregate(items)
	if got := summary.Included[0].UnitValue; !got.Equal(decimal.RequireFromString("12.35")) {
		t.Errorf("stored unit value = %s, want 12.35", got)
	}
	if !summary.Total.Equal(decimal.RequireFromString("86.45")) {
		t.Errorf("Total = %s, want 86.45", summary.Total)
	}
	if !StoredTotal(summary.Included).Equal(summary.Total) {
		t.Errorf("stored total %s differs from %s", StoredTotal(summary.Included), summary.Total)
	}
}
