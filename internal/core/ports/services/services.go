// Package services defines the service facades the transport layer depends
// on, so handlers can be tested against mocks.
package services

import (
	"context"

	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	"github.com/ishan22399/Credit-Approval-System/internal/dto"
)

// CustomerSvcFacade exposes customer registration and lookup.
type CustomerSvcFacade interface {
	RegisterCustomer(ctx context.Context, req dto.RegisterCustomerRequest) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)
}

// LoanSvcFacade exposes eligibility evaluation and loan lifecycle operations.
type LoanSvcFacade interface {
	// CheckEligibility runs the credit engine against the customer's current
	// snapshot without persisting anything.
	CheckEligibility(ctx context.Context, customerID int64, proposal domain.LoanProposal) (*domain.EligibilityDecision, error)
	// CreateLoan runs the credit engine and, when the proposal is approved,
	// persists the loan at the effective rate and bumps the customer's debt.
	// The returned loan is nil when the proposal was rejected.
	CreateLoan(ctx context.Context, customerID int64, proposal domain.LoanProposal) (*domain.Loan, *domain.EligibilityDecision, error)
	// GetLoanDetail returns a loan together with its owning customer.
	GetLoanDetail(ctx context.Context, loanID int64) (*domain.Loan, *domain.Customer, error)
	// ListCustomerLoans returns the customer's loan history, oldest first.
	ListCustomerLoans(ctx context.Context, customerID int64) ([]domain.Loan, error)
}

// ServiceContainer bundles the service facades handed to route registration.
type ServiceContainer struct {
	Customer CustomerSvcFacade
	Loan     LoanSvcFacade
}
