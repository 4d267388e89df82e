package dto

import (
	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CheckEligibilityRequest defines a loan proposal to evaluate.
type CheckEligibilityRequest struct {
	CustomerID   int64           `json:"customer_id" binding:"required,gt=0"`
	LoanAmount   decimal.Decimal `json:"loan_amount" binding:"required,gt=0"`
	InterestRate decimal.Decimal `json:"interest_rate" binding:"gte=0"`
	Tenure       int             `json:"tenure" binding:"required,gt=0"`
}

// ToProposal converts the request into the engine's proposal form.
func (r CheckEligibilityRequest) ToProposal() domain.LoanProposal {
	return domain.LoanProposal{
		LoanAmount:   r.LoanAmount,
		InterestRate: r.InterestRate,
		Tenure:       r.Tenure,
	}
}

// CheckEligibilityResponse mirrors the eligibility endpoint's wire contract.
// The monthly installment is quoted at the in-force rate, so a rejected
// proposal shows what the corrected rate would cost.
type CheckEligibilityResponse struct {
	CustomerID            int64           `json:"customer_id"`
	Approval              bool            `json:"approval"`
	InterestRate          decimal.Decimal `json:"interest_rate"`
	CorrectedInterestRate decimal.Decimal `json:"corrected_interest_rate"`
	Tenure                int             `json:"tenure"`
	MonthlyInstallment    decimal.Decimal `json:"monthly_installment"`
}

// ToCheckEligibilityResponse converts an engine decision to the response DTO.
func ToCheckEligibilityResponse(customerID int64, tenure int, d *domain.EligibilityDecision) CheckEligibilityResponse {
	return CheckEligibilityResponse{
		CustomerID:            customerID,
		Approval:              d.Approved,
		InterestRate:          d.InterestRate,
		CorrectedInterestRate: d.CorrectedInterestRate,
		Tenure:                tenure,
		MonthlyInstallment:    d.MonthlyInstallment,
	}
}
