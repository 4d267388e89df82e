// Package credit implements the loan decisioning engine: the EMI calculator,
// the credit scorer and the eligibility decider. Every function here is a pure
// computation over its arguments; there is no I/O, no clock access and no
// shared state, so the package is safe to call from any number of goroutines.
package credit

import (
	"fmt"

	"github.com/ishan22399/Credit-Approval-System/internal/apperrors"
	"github.com/shopspring/decimal"
)

var (
	one           = decimal.NewFromInt(1)
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// Installment computes the fixed monthly installment (EMI) for a loan of the
// given principal, annual interest rate (percent) and tenure in months, using
// the closed-form annuity formula
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// with monthly rate r = annualRatePct / 100 / 12. A zero rate degenerates to
// an equal split of the principal. The result is rounded to two decimal
// places.
func Installment(principal decimal.Decimal, annualRatePct decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if tenureMonths <= 0 {
		return decimal.Zero, fmt.Errorf("tenure must be positive, got %d: %w", tenureMonths, apperrors.ErrValidation)
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("principal must be positive, got %s: %w", principal, apperrors.ErrValidation)
	}
	if annualRatePct.IsNegative() {
		return decimal.Zero, fmt.Errorf("interest rate must not be negative, got %s: %w", annualRatePct, apperrors.ErrValidation)
	}

	tenure := decimal.NewFromInt(int64(tenureMonths))
	if annualRatePct.IsZero() {
		return principal.Div(tenure).Round(2), nil
	}

	r := annualRatePct.Div(hundred).Div(monthsPerYear)
	compound := one.Add(r).Pow(tenure) // (1+r)^n

	emi := principal.Mul(r).Mul(compound).Div(compound.Sub(one))
	return emi.Round(2), nil
}
