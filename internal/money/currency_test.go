package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount any
		want   string
	}{
		{"zero", 0, "₱0.00"},
		{"small", 5.5, "₱5.50"},
		{"thousands", 1234.5, "₱1,234.50"},
		{"millions", decimal.RequireFromString("1234567.891"), "₱1,234,567.89"},
		{"exact group", 100000, "₱100,000.00"},
		{"string input", "2,500", "₱2,500.00"},
		{"non numeric", "n/a", "₱0.00"},
		{"nil", nil, "₱0.00"},
		{"negative", -1500, "-₱1,500.00"},
		{"json number", json.Number("42.125"), "₱42.13"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.amount); got != tc.want {
				t.Errorf("Format(%v) = %q, want %q", tc.amount, got, tc.want)
			}
		})
	}
}

func TestFormatterCustomGlyph(t *testing.T) {
	f := NewFormatter("$")
	if got := f.Format(99.999); got != "$100.00" {
		t.Errorf("expected $100.00, got %q", got)
	}
	if got := NewFormatter("  ").Glyph(); got != DefaultGlyph {
		t.Errorf("blank glyph should fall back to %q, got %q", DefaultGlyph, got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"₱1,000.00", "1000"},
		{"PHP 12,345.67", "12345.67"},
		{"-₱50.25", "-50.25"},
		{"", "0"},
		{"abc", "0"},
		{"1.2.3", "0"},
		{"--5", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := Parse(tc.in)
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	// amounts with three fraction digits exercise the rounding step
	for i := int64(0); i <= 10_000_000_000; i += 7_919_357 {
		x := decimal.New(i, -3)
		got := Parse(Format(x))
		if !got.Equal(x.Round(2)) {
			t.Fatalf("round trip of %s gave %s, want %s", x, got, x.Round(2))
		}
	}
}

func FuzzFormatParseRoundTrip(f *testing.F) {
	for _, seed := range []float64{0, 0.005, 1, 999.995, 1234.5, 9_999_999.99} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, x float64) {
		if x < 0 || x > 10_000_000 || x != x {
			t.Skip()
		}
		d := decimal.NewFromFloat(x)
		if got := Parse(Format(d)); !got.Equal(d.Round(2)) {
			t.Errorf("round trip of %s gave %s", d, got)
		}
	})
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"int", 7, "7"},
		{"int64", int64(12), "12"},
		{"float", 2.5, "2.5"},
		{"display string", "₱1,000.00", "1000"},
		{"bool", true, "0"},
		{"struct", struct{}{}, "0"},
		{"bad json number", json.Number("x"), "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToDecimal(tc.in); !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("ToDecimal(%v) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}
