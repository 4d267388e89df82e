package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ishan22399/Credit-Approval-System/internal/apperrors"
	"github.com/ishan22399/Credit-Approval-System/internal/core/credit"
	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	portsrepo "github.com/ishan22399/Credit-Approval-System/internal/core/ports/repositories"
	portssvc "github.com/ishan22399/Credit-Approval-System/internal/core/ports/services"
)

// loanServiceImpl implements the LoanSvcFacade interface. It orchestrates the
// pure credit engine against the customer and loan stores; the engine itself
// never touches persistence.
type loanServiceImpl struct {
	BaseService
	customerRepo portsrepo.CustomerRepository
	loanRepo     portsrepo.LoanRepository
	now          func() time.Time
}

// LoanServiceOption is a functional option for configuring the loan service.
type LoanServiceOption func(*loanServiceImpl)

// WithClock overrides the service's wall clock, used by tests to pin the
// as-of year and loan start dates.
func WithClock(now func() time.Time) LoanServiceOption {
	return func(s *loanServiceImpl) {
		s.now = now
	}
}

// NewLoanService creates a new loan service with the provided options.
func NewLoanService(customerRepo portsrepo.CustomerRepository, loanRepo portsrepo.LoanRepository, options ...LoanServiceOption) portssvc.LoanSvcFacade {
	svc := &loanServiceImpl{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LoanSvcFacade = (*loanServiceImpl)(nil)

// evaluate loads the customer snapshot and loan history and runs the decider.
func (s *loanServiceImpl) evaluate(ctx context.Context, customerID int64, proposal domain.LoanProposal) (*domain.Customer, *domain.EligibilityDecision, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load customer for eligibility",
				slog.Int64("customer_id", customerID))
		}
		return nil, nil, err
	}

	history, err := s.loanRepo.ListLoansByCustomer(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load loan history",
			slog.Int64("customer_id", customerID))
		return nil, nil, err
	}

	decision, err := credit.Decide(*customer, history, proposal, s.now().Year())
	if err != nil {
		return nil, nil, err
	}
	return customer, &decision, nil
}

// CheckEligibility evaluates a proposal without persisting anything.
func (s *loanServiceImpl) CheckEligibility(ctx context.Context, customerID int64, proposal domain.LoanProposal) (*domain.EligibilityDecision, error) {
	_, decision, err := s.evaluate(ctx, customerID, proposal)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Eligibility evaluated",
		slog.Int64("customer_id", customerID),
		slog.Bool("approved", decision.Approved),
		slog.String("credit_score", decision.CreditScore.String()))
	return decision, nil
}

// CreateLoan evaluates a proposal and, when approved, persists the loan at
// the effective rate and increments the customer's current debt. The write is
// guarded by an optimistic check on the debt snapshot the decision was based
// on, so two racing applications cannot both pass the affordability rules.
func (s *loanServiceImpl) CreateLoan(ctx context.Context, customerID int64, proposal domain.LoanProposal) (*domain.Loan, *domain.EligibilityDecision, error) {
	customer, decision, err := s.evaluate(ctx, customerID, proposal)
	if err != nil {
		return nil, nil, err
	}

	if !decision.Approved {
		s.LogInfo(ctx, "Loan application rejected",
			slog.Int64("customer_id", customerID),
			slog.String("credit_score", decision.CreditScore.String()),
			slog.String("corrected_rate", decision.CorrectedInterestRate.String()))
		return nil, decision, nil
	}

	// Materialize at the effective rate: the corrected rate is a floor, never
	// a discount.
	rate := decision.EffectiveRate()
	installment, err := credit.Installment(proposal.LoanAmount, rate, proposal.Tenure)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	loan := domain.Loan{
		CustomerID:       customerID,
		LoanAmount:       proposal.LoanAmount,
		Tenure:           proposal.Tenure,
		InterestRate:     rate,
		MonthlyRepayment: installment,
		EMIsPaidOnTime:   0,
		StartDate:        now,
		EndDate:          now.AddDate(0, proposal.Tenure, 0),
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	loanID, err := s.loanRepo.SaveLoanAndIncrementDebt(ctx, loan, customer.CurrentDebt)
	if err != nil {
		s.LogError(ctx, err, "Failed to persist approved loan",
			slog.Int64("customer_id", customerID))
		return nil, nil, err
	}
	loan.LoanID = loanID

	s.LogInfo(ctx, "Loan created",
		slog.Int64("loan_id", loanID),
		slog.Int64("customer_id", customerID),
		slog.String("interest_rate", rate.String()),
		slog.String("monthly_installment", installment.String()))
	return &loan, decision, nil
}

// GetLoanDetail returns a loan together with its owning customer.
func (s *loanServiceImpl) GetLoanDetail(ctx context.Context, loanID int64) (*domain.Loan, *domain.Customer, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find loan by ID", slog.Int64("loan_id", loanID))
		}
		return nil, nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, loan.CustomerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load customer for loan detail",
			slog.Int64("loan_id", loanID),
			slog.Int64("customer_id", loan.CustomerID))
		return nil, nil, err
	}
	return loan, customer, nil
}

// ListCustomerLoans returns the customer's loan history, oldest first.
func (s *loanServiceImpl) ListCustomerLoans(ctx context.Context, customerID int64) ([]domain.Loan, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.ListLoansByCustomer(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans",
			slog.Int64("customer_id", customerID))
		return nil, err
	}
	if loans == nil {
		return []domain.Loan{}, nil
	}
	return loans, nil
}
