// Package money holds the amount formatting used on printed PO and PAR
// documents and in form total fields.
package money

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// DefaultGlyph is the currency sign rendered in front of formatted amounts.
const DefaultGlyph = "₱"

// Formatter converts between display strings and decimal amounts.
type Formatter struct {
	glyph string
}

// NewFormatter returns a Formatter using glyph, or DefaultGlyph when empty.
func NewFormatter(glyph string) *Formatter {
	if strings.TrimSpace(glyph) == "" {
		glyph = DefaultGlyph
	}
	return &Formatter{glyph: glyph}
}

var defaultFormatter = NewFormatter(DefaultGlyph)

// Format renders amount with DefaultGlyph. See Formatter.Format.
func Format(amount any) string {
	return defaultFormatter.Format(amount)
}

// Parse reads a display string. See Formatter.Parse.
func Parse(s string) decimal.Decimal {
	return defaultFormatter.Parse(s)
}

// Glyph returns the currency sign used by f.
func (f *Formatter) Glyph() string {
	return f.glyph
}

// Format coerces amount to a decimal (anything unreadable becomes 0), rounds
// it to two places and renders it as e.g. "₱1,234.50".
func (f *Formatter) Format(amount any) string {
	d := ToDecimal(amount).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	return sign + f.glyph + groupThousands(whole) + "." + frac
}

// Parse keeps only digits, '.' and '-' from s and reads the rest as a decimal.
// Anything unreadable yields 0. Inputs with several minus signs or a minus
// sign inside the digits are ambiguous and also yield 0.
func (f *Formatter) Parse(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ToDecimal coerces a loosely typed value (form field, JSON number, display
// string) into a decimal. Unreadable values become 0.
func ToDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return t
	case *decimal.Decimal:
		if t == nil {
			return decimal.Zero
		}
		return *t
	case string:
		return defaultFormatter.Parse(t)
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case bool:
		return decimal.Zero
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
