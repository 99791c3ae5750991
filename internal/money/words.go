package money

import (
	"fmt"
	"strings"

	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/shopspring/decimal"
)

// Style selects the letter case of the words output.
type Style int

const (
	StyleUpper Style = iota
	StyleTitle
)

// ParseStyle maps "title" to StyleTitle and anything else to StyleUpper.
func ParseStyle(s string) Style {
	if strings.EqualFold(strings.TrimSpace(s), "title") {
		return StyleTitle
	}
	return StyleUpper
}

func (s Style) String() string {
	if s == StyleTitle {
		return "title"
	}
	return "upper"
}

var (
	onesWords = []string{
		"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
		"Seventeen", "Eighteen", "Nineteen",
	}
	tensWords = []string{
		"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
	}
	// index i is the scale of the i-th group of three digits
	scaleWords = []string{"", "Thousand", "Million", "Billion", "Trillion", "Quadrillion"}

	maxWordsAmount = decimal.New(1, 18)
)

// WordsFor spells out amount for a printed document, e.g. 1500.25 becomes
// "ONE THOUSAND FIVE HUNDRED AND 25/100". The amount is rounded to two places.
// Negative amounts and amounts of a quintillion or more are rejected with
// domain.ErrInvalidAmount.
func WordsFor(amount decimal.Decimal, style Style) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("%w: %s is negative", domain.ErrInvalidAmount, amount.String())
	}

	amount = amount.Round(2)
	if amount.GreaterThanOrEqual(maxWordsAmount) {
		return "", fmt.Errorf("%w: %s is out of range", domain.ErrInvalidAmount, amount.String())
	}

	if amount.IsZero() {
		return applyStyle("Zero", style), nil
	}

	whole := amount.Truncate(0)
	cents := amount.Sub(whole).Mul(decimal.NewFromInt(100)).IntPart()

	words := wholeWords(whole.IntPart())
	if words == "" {
		words = "Zero"
	}
	if cents > 0 {
		words = fmt.Sprintf("%s And %02d/100", words, cents)
	}

	return applyStyle(strings.TrimSpace(words), style), nil
}

// WordsForString parses s strictly (no currency glyphs or separators) and
// spells it out. Unparseable input is rejected with domain.ErrInvalidAmount.
func WordsForString(s string, style Style) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, s)
	}
	return WordsFor(d, style)
}

func wholeWords(n int64) string {
	var groups []string
	for idx := 0; n > 0; idx++ {
		chunk := n % 1000
		if chunk != 0 {
			w := chunkWords(chunk)
			if scaleWords[idx] != "" {
				w += " " + scaleWords[idx]
			}
			groups = append([]string{w}, groups...)
		}
		n /= 1000
	}
	return strings.Join(groups, " ")
}

func chunkWords(n int64) string {
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, onesWords[h]+" Hundred")
	}

	rest := n % 100
	switch {
	case rest == 0:
	case rest < 20:
		parts = append(parts, onesWords[rest])
	default:
		w := tensWords[rest/10]
		if rest%10 != 0 {
			w += " " + onesWords[rest%10]
		}
		parts = append(parts, w)
	}

	return strings.Join(parts, " ")
}

func applyStyle(words string, style Style) string {
	if style == StyleTitle {
		return strings.ReplaceAll(words, " And ", " and ")
	}
	return strings.ToUpper(words)
}
