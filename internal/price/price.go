// Package price formats catalog prices for display and strips that
// formatting again before a price is sent to the products API.
//
// Prices are whole currency units: the formatted form has a currency
// prefix, locale thousands separators and no fractional digits.
package price

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale = "id-ID"
	DefaultPrefix = "Rp"
)

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// Formatter renders amounts for one locale and currency prefix.
type Formatter struct {
	prefix  string
	printer *message.Printer
	// sep is the locale's grouping separator, used for amounts too large
	// for the printer to take exactly
	sep string
}

// NewFormatter returns a Formatter for a BCP 47 locale such as "id-ID".
func NewFormatter(locale, prefix string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid price locale %q: %w", locale, err)
	}

	return newFormatter(tag, prefix), nil
}

func newFormatter(tag language.Tag, prefix string) *Formatter {
	printer := message.NewPrinter(tag)
	sep := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, printer.Sprint(number.Decimal(1000000)))
	if _, size := utf8.DecodeRuneInString(sep); size > 0 {
		sep = sep[:size]
	}

	return &Formatter{
		prefix:  prefix,
		printer: printer,
		sep:     sep,
	}
}

var defaultFormatter = newFormatter(language.MustParse(DefaultLocale), DefaultPrefix)

// Default returns the id-ID / Rp formatter
func Default() *Formatter {
	return defaultFormatter
}

// Format strips every non-digit from raw and renders what is left.
// Empty or digit-free input renders as zero.
func (f *Formatter) Format(raw string) string {
	d, err := decimal.NewFromString(Unformat(raw))
	if err != nil {
		d = decimal.Zero
	}
	return f.render(d)
}

// FormatAmount renders a numeric price, rounding half away from zero.
func (f *Formatter) FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return f.render(decimal.Zero)
	}
	return f.render(decimal.NewFromFloat(v))
}

// Mask is the live input mask: a field without digits is cleared,
// anything else is reformatted.
func (f *Formatter) Mask(input string) string {
	if Unformat(input) == "" {
		return ""
	}
	return f.Format(input)
}

func (f *Formatter) render(d decimal.Decimal) string {
	if d.IsNegative() {
		d = decimal.Zero
	}
	d = d.Round(0)

	var grouped string
	if d.LessThanOrEqual(maxInt64) {
		grouped = f.printer.Sprint(number.Decimal(d.IntPart(), number.MaxFractionDigits(0)))
	} else {
		grouped = group(d.String(), f.sep)
	}
	if f.prefix == "" {
		return grouped
	}
	return f.prefix + " " + grouped
}

// group inserts sep between every three digits, counting from the right
func group(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Unformat strips a formatted price back to its raw digit string.
func Unformat(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Parse unformats s and returns its numeric value. No digits means zero.
func Parse(s string) (float64, error) {
	digits := Unformat(s)
	if digits == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}

// Format formats raw with the default formatter
func Format(raw string) string {
	return defaultFormatter.Format(raw)
}

// FormatAmount formats v with the default formatter
func FormatAmount(v float64) string {
	return defaultFormatter.FormatAmount(v)
}

// Mask masks input with the default formatter
func Mask(input string) string {
	return defaultFormatter.Mask(input)
}
