package kernel

import (
	"fmt"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in integer minor
// units (pence). Storing amounts as integers avoids floating point rounding
// in totals arithmetic, and the type enforces the invariant that order money
// fields are never negative.
//
// The zero value is a valid zero amount, so Money can be embedded in
// aggregates that legitimately carry zero totals (e.g. a fully discounted
// order). Use NewMoney to construct validated amounts from external input.
//
// Money is immutable and safe for concurrent use.
type Money struct {
	pence int64
}

// NewMoney creates a Money amount from integer pence.
// Returns an error if the amount is negative.
//
// Example:
//
//	total, err := kernel.NewMoney(4999) // £49.99
//	if err != nil {
//	    // handle validation error
//	}
func NewMoney(pence int64) (Money, error) {
	if pence < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount is invalid",
			fmt.Errorf("%d is negative", pence),
		)
	}
	return Money{pence: pence}, nil
}

// Pence returns the amount in integer minor units.
func (m Money) Pence() int64 {
	return m.pence
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.pence == 0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{pence: m.pence + other.pence}
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.pence > other.pence
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.pence == other.pence
}

// String returns the amount formatted as pounds and pence, e.g. "£49.99".
// Implements fmt.Stringer for logging and display.
func (m Money) String() string {
	return fmt.Sprintf("£%d.%02d", m.pence/100, m.pence%100)
}
