package domain

import "github.com/shopspring/decimal"

// LoanProposal is a requested loan under evaluation. It is never persisted by
// the credit engine; the caller materializes a Loan from it after approval.
type LoanProposal struct {
	LoanAmount   decimal.Decimal `json:"loanAmount"`   // Principal, must be > 0
	InterestRate decimal.Decimal `json:"interestRate"` // Requested annual percentage, >= 0
	Tenure       int             `json:"tenure"`       // Months, must be > 0
}

// EligibilityDecision is the immutable outcome of one eligibility evaluation.
//
// CorrectedInterestRate acts as a floor, never a discount: when the proposal is
// rejected on a rate band, it carries the minimum rate the engine would accept.
// MonthlyInstallment is always computed at whichever rate is in force (the
// requested rate when approved, the corrected rate when rejected) so callers
// can quote what the installment would be.
type EligibilityDecision struct {
	Approved              bool            `json:"approved"`
	CreditScore           decimal.Decimal `json:"creditScore"` // 0..100, two decimal places
	InterestRate          decimal.Decimal `json:"interestRate"`
	CorrectedInterestRate decimal.Decimal `json:"correctedInterestRate"`
	MonthlyInstallment    decimal.Decimal `json:"monthlyInstallment"`
}

// EffectiveRate returns the rate a materialized loan must carry: the higher of
// the requested and corrected rates.
func (d EligibilityDecision) EffectiveRate() decimal.Decimal {
	if d.InterestRate.GreaterThan(d.CorrectedInterestRate) {
		return d.InterestRate
	}
	return d.CorrectedInterestRate
}
