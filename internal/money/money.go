// Package money holds currency amounts as fixed-point integer minor units.
//
// All arithmetic inside the ledger engine happens on Cents. Decimal values only
// appear at the wire boundary, where FromDecimal/FromFloat and Decimal/Float64
// convert in and out with half-away-from-zero rounding to two places.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Cents is an amount in minor currency units (1/100 of the major unit).
type Cents int64

// Epsilon is the tolerance used when comparing sums that originate from
// decimal input: one minor unit, i.e. 0.01.
const Epsilon Cents = 1

// MaxAmount bounds a single amount: 10 trillion major units.
const MaxAmount Cents = 1_000_000_000_000_000

// MaxTotal bounds the sum of all expense amounts in one ledger, so that paid
// and owed totals stay well inside int64.
const MaxTotal Cents = 1_000 * MaxAmount

// ErrOutOfRange is returned for amounts whose magnitude exceeds MaxAmount.
var ErrOutOfRange = errors.New("amount out of range")

var (
	hundred    = decimal.NewFromInt(100)
	maxDecimal = MaxAmount.Decimal()
)

// FromDecimal converts a decimal major-unit amount to cents, rounding to two
// places. Amounts beyond ±MaxAmount are rejected with ErrOutOfRange.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	d = d.Round(2)
	if d.Abs().GreaterThan(maxDecimal) {
		return 0, ErrOutOfRange
	}
	return Cents(d.Mul(hundred).IntPart()), nil
}

// FromFloat converts a float major-unit amount (as decoded from JSON) to cents.
func FromFloat(f float64) (Cents, error) {
	return FromDecimal(decimal.NewFromFloat(f))
}

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Float64 returns the amount in major units for JSON and display.
// Use Cents for calculations.
func (c Cents) Float64() float64 {
	return c.Decimal().InexactFloat64()
}

// String formats the amount with exactly two decimals.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Abs returns the absolute value.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Positive reports whether the amount is strictly greater than zero.
func (c Cents) Positive() bool {
	return c > 0
}

// Within reports whether a and b differ by at most tol.
func Within(a, b, tol Cents) bool {
	return (a - b).Abs() <= tol
}
