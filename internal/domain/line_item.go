package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// LineItem is a raw PO or PAR row as posted by a form. Numeric fields keep
// whatever JSON value the client sent; coercion happens in the items package.
type LineItem struct {
	Description *string `json:"description,omitempty"`
	Quantity    any     `json:"quantity,omitempty"`
	Amount      any     `json:"amount,omitempty"`
	UnitCost    any     `json:"unit_cost,omitempty"`
}

var (
	descriptionKeys = []string{"description", "item_description", "desc"}
	quantityKeys    = []string{"quantity", "qty"}
	amountKeys      = []string{"amount"}
	unitCostKeys    = []string{"unit_cost", "unitCost", "unit_price", "price"}
)

// UnmarshalJSON accepts the field-name variants used across the PO and PAR forms.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*li = LineItem{
		Quantity: firstPresent(raw, quantityKeys),
		Amount:   firstPresent(raw, amountKeys),
		UnitCost: firstPresent(raw, unitCostKeys),
	}

	if v := firstPresent(raw, descriptionKeys); v != nil {
		var desc string
		switch t := v.(type) {
		case string:
			desc = t
		case json.Number:
			desc = t.String()
		}
		li.Description = &desc
	}

	return nil
}

// HasBlankDescription reports whether the item carries a description that is
// empty once trimmed. Items without a description field are not blank.
func (li LineItem) HasBlankDescription() bool {
	return li.Description != nil && strings.TrimSpace(*li.Description) == ""
}

// DescriptionText returns the trimmed description or an empty string.
func (li LineItem) DescriptionText() string {
	if li.Description == nil {
		return ""
	}
	return strings.TrimSpace(*li.Description)
}

func firstPresent(raw map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
