package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ishan22399/Credit-Approval-System/internal/apperrors"
	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	portsrepo "github.com/ishan22399/Credit-Approval-System/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type loanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new repository for loan data.
func NewLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepository {
	return &loanRepository{pool: pool}
}

const loanColumns = `loan_id, customer_id, loan_amount, tenure, interest_rate, monthly_repayment, emis_paid_on_time, start_date, end_date, created_at, updated_at`

// FindLoanByID retrieves a loan by its ID.
func (r *loanRepository) FindLoanByID(ctx context.Context, loanID int64) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`

	loan, err := scanLoan(r.pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("loan %d: %w", loanID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find loan by ID %d: %w", loanID, err)
	}
	return loan, nil
}

// ListLoansByCustomer returns the customer's full loan history, oldest first.
func (r *loanRepository) ListLoansByCustomer(ctx context.Context, customerID int64) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY loan_id;`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loan rows: %w", err)
	}
	return loans, nil
}

// SaveLoanAndIncrementDebt atomically inserts an approved loan and bumps the
// customer's current debt. The debt update carries an optimistic check: it
// only applies while the customer's debt still matches the snapshot the
// eligibility decision was computed from, so two racing applications cannot
// both pass the affordability rules against stale state.
func (r *loanRepository) SaveLoanAndIncrementDebt(ctx context.Context, loan domain.Loan, expectedDebt decimal.Decimal) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO loans (customer_id, loan_amount, tenure, interest_rate, monthly_repayment, emis_paid_on_time, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING loan_id;
	`
	var loanID int64
	err = tx.QueryRow(ctx, insertQuery,
		loan.CustomerID,
		loan.LoanAmount,
		loan.Tenure,
		loan.InterestRate,
		loan.MonthlyRepayment,
		loan.EMIsPaidOnTime,
		loan.StartDate,
		nullableTime(loan.EndDate),
		loan.CreatedAt,
		loan.UpdatedAt,
	).Scan(&loanID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert loan for customer %d: %w", loan.CustomerID, err)
	}

	debtQuery := `
		UPDATE customers
		SET current_debt = current_debt + $1, updated_at = $2
		WHERE customer_id = $3 AND current_debt = $4;
	`
	tag, err := tx.Exec(ctx, debtQuery, loan.LoanAmount, loan.UpdatedAt, loan.CustomerID, expectedDebt)
	if err != nil {
		return 0, fmt.Errorf("failed to update debt for customer %d: %w", loan.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, fmt.Errorf("customer %d debt changed since decision: %w", loan.CustomerID, apperrors.ErrConflict)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit loan creation: %w", err)
	}
	return loanID, nil
}

// ImportLoan inserts a loan carrying an explicit spreadsheet-supplied ID.
// It does not touch the customer's debt; imported data already reflects it.
func (r *loanRepository) ImportLoan(ctx context.Context, loan domain.Loan) error {
	query := `
		INSERT INTO loans (loan_id, customer_id, loan_amount, tenure, interest_rate, monthly_repayment, emis_paid_on_time, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		loan.LoanID,
		loan.CustomerID,
		loan.LoanAmount,
		loan.Tenure,
		loan.InterestRate,
		loan.MonthlyRepayment,
		loan.EMIsPaidOnTime,
		loan.StartDate,
		nullableTime(loan.EndDate),
		loan.CreatedAt,
		loan.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("loan %d: %w", loan.LoanID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to import loan %d: %w", loan.LoanID, err)
	}
	return nil
}

// scanLoan maps one loans row to the domain model.
func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var l domain.Loan
	var endDate *time.Time
	err := row.Scan(
		&l.LoanID,
		&l.CustomerID,
		&l.LoanAmount,
		&l.Tenure,
		&l.InterestRate,
		&l.MonthlyRepayment,
		&l.EMIsPaidOnTime,
		&l.StartDate,
		&endDate,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if endDate != nil {
		l.EndDate = *endDate
	}
	return &l, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
