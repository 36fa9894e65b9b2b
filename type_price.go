package prices

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// priceDigits is the number of fraction digits a price is held and persisted with.
const priceDigits = 2

// maxIntegerDigits bounds the integer part of a parsed price.
const maxIntegerDigits = 15

// ErrPriceRange reports a price with more than maxIntegerDigits integer digits.
var ErrPriceRange = fmt.Errorf("price must be lower than 1e%d", maxIntegerDigits)

// Price represents a non-negative price with exactly two fraction digits.
//
// The zero value is a valid price of 0.00.
type Price struct {
	value decimal.Decimal
}

// NewPrice creates a Price from any supported numeric value, rounded to two places.
func NewPrice[T float32 | float64 | int | int64 | decimal.Decimal](value T) Price {
	var d decimal.Decimal
	switch v := any(value).(type) {
	case decimal.Decimal:
		d = v
	case float32:
		d = decimal.NewFromFloat32(v)
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	}
	return Price{value: d.Round(priceDigits)}
}

// ParsePrice parses a price typed by a user.
//
// A ',' is accepted as decimal separator. Unlike the store reader, ParsePrice is
// strict: an unparsable or negative value is a *ValidationError.
func ParsePrice(text string) (Price, error) {
	normalized := strings.ReplaceAll(text, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return Price{}, &ValidationError{Field: "price", Value: text, Err: err}
	}
	if d.IsNegative() {
		return Price{}, &ValidationError{Field: "price", Value: text, Err: fmt.Errorf("price must not be negative")}
	}
	p, err := priceOf(d)
	if err != nil {
		return Price{}, &ValidationError{Field: "price", Value: text, Err: err}
	}
	return p, nil
}

// decodePrice parses a stored price cell. Any defect yields a zero price and ok=false.
func decodePrice(cell string) (p Price, ok bool) {
	d, err := decimal.NewFromString(cell)
	if err != nil || d.IsNegative() {
		return Price{}, false
	}
	if p, err = priceOf(d); err != nil {
		return Price{}, false
	}
	return p, true
}

// priceOf rounds a parsed decimal to a Price.
//
// The magnitude is checked on the exponent first: rounding a value like 1e999999999
// would expand its coefficient to a billion digits.
func priceOf(d decimal.Decimal) (Price, error) {
	if d.IsZero() {
		return Price{}, nil
	}
	integerDigits := d.NumDigits() + int(d.Exponent())
	switch {
	case integerDigits > maxIntegerDigits:
		return Price{}, ErrPriceRange
	case integerDigits < -priceDigits:
		// below 0.001, rounds to zero.
		return Price{}, nil
	}
	return NewPrice(d), nil
}

// String returns the price with two fraction digits and a '.' separator.
func (p Price) String() string { return p.value.StringFixed(priceDigits) }

// Display returns the price formatted for the given currency code, rounded to
// the currency fraction digits.
// An empty or unknown currency falls back to String.
func (p Price) Display(currency string) string {
	if currency == "" {
		return p.String()
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		return p.String()
	}
	minor := p.value.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}

// Cents returns the price in hundredths, whatever the currency.
func (p Price) Cents() int64 { return p.value.Shift(priceDigits).IntPart() }

// Decimal returns the underlying decimal value.
func (p Price) Decimal() decimal.Decimal { return p.value }

func (p Price) IsZero() bool            { return p.value.IsZero() }
func (p Price) Equal(q Price) bool      { return p.value.Equal(q.value) }
func (p Price) LessThan(q Price) bool   { return p.value.LessThan(q.value) }
func (p Price) InexactFloat64() float64 { return p.value.InexactFloat64() }

// MarshalJSON writes the price as a bare JSON number with two fraction digits.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON reads a price from a JSON number or string.
func (p *Price) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid price %s: %w", data, err)
	}
	q, err := priceOf(d)
	if err != nil {
		return fmt.Errorf("invalid price %s: %w", data, err)
	}
	*p = q
	return nil
}

// ValidateCurrency checks that code is a currency known to the display formatter.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}
