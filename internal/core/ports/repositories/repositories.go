// Package repositories defines the persistence interfaces consumed by the
// service layer. Implementations live under internal/adapters/database.
package repositories

import (
	"context"

	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerRepository provides access to customer records.
type CustomerRepository interface {
	// SaveCustomer inserts a new customer and returns its generated ID.
	SaveCustomer(ctx context.Context, customer domain.Customer) (int64, error)
	// FindCustomerByID returns apperrors.ErrNotFound when no such customer exists.
	FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	// FindCustomerByPhone returns apperrors.ErrNotFound when no customer has the number.
	FindCustomerByPhone(ctx context.Context, phoneNumber string) (*domain.Customer, error)
	// ImportCustomer inserts a customer with an explicit, spreadsheet-supplied ID.
	// Returns apperrors.ErrDuplicate when the ID is already taken.
	ImportCustomer(ctx context.Context, customer domain.Customer) error
}

// LoanRepository provides access to loan records.
type LoanRepository interface {
	// FindLoanByID returns apperrors.ErrNotFound when no such loan exists.
	FindLoanByID(ctx context.Context, loanID int64) (*domain.Loan, error)
	// ListLoansByCustomer returns the customer's full loan history, oldest first.
	ListLoansByCustomer(ctx context.Context, customerID int64) ([]domain.Loan, error)
	// SaveLoanAndIncrementDebt atomically inserts an approved loan and adds its
	// principal to the customer's current debt, guarded by an optimistic check
	// against the debt snapshot the decision was computed from. Returns the new
	// loan ID, or apperrors.ErrConflict when the snapshot went stale.
	SaveLoanAndIncrementDebt(ctx context.Context, loan domain.Loan, expectedDebt decimal.Decimal) (int64, error)
	// ImportLoan inserts a loan with an explicit, spreadsheet-supplied ID.
	// Returns apperrors.ErrDuplicate when the ID is already taken.
	ImportLoan(ctx context.Context, loan domain.Loan) error
}
