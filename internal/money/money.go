// Package money handles the league's monetary values. All arithmetic is done
// on integer cents; conversion to display strings happens only at the edges.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Cents is a signed monetary amount in minor currency units.
type Cents int64

// Major converts cents to major currency units for API boundaries.
func (c Cents) Major() float64 {
	return float64(c) / 100
}

// Formatter renders cents as locale-aware currency strings. The league's
// convention is Brazilian Portuguese ("R$ 1.614,00") but both symbol and
// locale are configurable.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a Formatter for the given currency symbol and BCP 47
// locale tag. An unparseable locale falls back to pt-BR.
func NewFormatter(symbol, locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	return &Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}
}

// DefaultFormatter returns the league's standard pt-BR / R$ formatter.
func DefaultFormatter() *Formatter {
	return NewFormatter("R$", "pt-BR")
}

// FormatCurrency renders cents as a currency string, e.g. 161400 -> "R$ 1.614,00".
// Negative amounts carry a leading minus: -500 -> "-R$ 5,00".
func (f *Formatter) FormatCurrency(c Cents) string {
	units := f.printer.Sprintf("%.2f", math.Abs(float64(c))/100)
	if c < 0 {
		return "-" + f.symbol + " " + units
	}
	return f.symbol + " " + units
}

// FormatScore is the compact score display: sign-aware divide-by-100 with two
// decimals and a comma separator, without thousands grouping or symbol.
// 161400 -> "1614,00", -500 -> "-5,00".
func FormatScore(c Cents) string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d,%02d", sign, v/100, v%100)
}

// ParseCurrency is the lenient inverse of FormatCurrency, used when ingesting
// spreadsheet cells. It strips the symbol and grouping dots, treats the comma
// as the decimal separator, and returns the amount in cents.
func ParseCurrency(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	neg := strings.Contains(s, "-")

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	t := strings.ReplaceAll(b.String(), ".", "")
	t = strings.ReplaceAll(t, ",", ".")
	if t == "" {
		return 0, fmt.Errorf("no numeric value in %q", s)
	}

	d, err := decimal.NewFromString(t)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if neg {
		cents = -cents
	}
	return Cents(cents), nil
}
