package dto

import (
	"time"

	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest defines a loan application. Shares the proposal shape of
// CheckEligibilityRequest; approval additionally persists the loan.
type CreateLoanRequest struct {
	CustomerID   int64           `json:"customer_id" binding:"required,gt=0"`
	LoanAmount   decimal.Decimal `json:"loan_amount" binding:"required,gt=0"`
	InterestRate decimal.Decimal `json:"interest_rate" binding:"gte=0"`
	Tenure       int             `json:"tenure" binding:"required,gt=0"`
}

// ToProposal converts the request into the engine's proposal form.
func (r CreateLoanRequest) ToProposal() domain.LoanProposal {
	return domain.LoanProposal{
		LoanAmount:   r.LoanAmount,
		InterestRate: r.InterestRate,
		Tenure:       r.Tenure,
	}
}

// CreateLoanResponse mirrors the loan creation endpoint's wire contract.
// LoanID is null when the application was rejected.
type CreateLoanResponse struct {
	LoanID             *int64          `json:"loan_id"`
	CustomerID         int64           `json:"customer_id"`
	LoanApproved       bool            `json:"loan_approved"`
	Message            string          `json:"message"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
}

// LoanDetailResponse is a single loan with its owning customer embedded.
type LoanDetailResponse struct {
	LoanID             int64           `json:"loan_id"`
	Customer           CustomerSummary `json:"customer"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	Tenure             int             `json:"tenure"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	EMIsPaidOnTime     int             `json:"emis_paid_on_time"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            *time.Time      `json:"end_date"`
	RepaymentsLeft     int             `json:"repayments_left"`
}

// ToLoanDetailResponse converts a loan and its customer to the detail DTO.
func ToLoanDetailResponse(l *domain.Loan, c *domain.Customer) LoanDetailResponse {
	return LoanDetailResponse{
		LoanID:             l.LoanID,
		Customer:           ToCustomerSummary(c),
		LoanAmount:         l.LoanAmount,
		Tenure:             l.Tenure,
		InterestRate:       l.InterestRate,
		MonthlyInstallment: l.MonthlyRepayment,
		EMIsPaidOnTime:     l.EMIsPaidOnTime,
		StartDate:          l.StartDate,
		EndDate:            nullableTime(l.EndDate),
		RepaymentsLeft:     l.RepaymentsLeft(),
	}
}

// LoanListItemResponse is one entry of a customer's loan listing.
type LoanListItemResponse struct {
	LoanID             int64           `json:"loan_id"`
	CustomerID         int64           `json:"customer_id"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	Tenure             int             `json:"tenure"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	EMIsPaidOnTime     int             `json:"emis_paid_on_time"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            *time.Time      `json:"end_date"`
	RepaymentsLeft     int             `json:"repayments_left"`
}

// ToLoanListResponse converts a customer's loans to their listing form.
func ToLoanListResponse(loans []domain.Loan) []LoanListItemResponse {
	res := make([]LoanListItemResponse, len(loans))
	for i, l := range loans {
		res[i] = LoanListItemResponse{
			LoanID:             l.LoanID,
			CustomerID:         l.CustomerID,
			LoanAmount:         l.LoanAmount,
			Tenure:             l.Tenure,
			InterestRate:       l.InterestRate,
			MonthlyInstallment: l.MonthlyRepayment,
			EMIsPaidOnTime:     l.EMIsPaidOnTime,
			StartDate:          l.StartDate,
			EndDate:            nullableTime(l.EndDate),
			RepaymentsLeft:     l.RepaymentsLeft(),
		}
	}
	return res
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
