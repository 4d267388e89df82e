// Package importer populates the customer and loan stores from the source
// spreadsheets. Rows with missing or duplicate IDs are skipped rather than
// failing the whole run, and loans with no stored installment get one
// backfilled through the EMI calculator so the credit engine can always treat
// monthly repayment as authoritative.
package importer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ishan22399/Credit-Approval-System/internal/apperrors"
	"github.com/ishan22399/Credit-Approval-System/internal/core/credit"
	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	portsrepo "github.com/ishan22399/Credit-Approval-System/internal/core/ports/repositories"
)

// Stats summarizes one ingestion pass.
type Stats struct {
	Created         int
	SkippedNoID     int
	SkippedDupe     int
	SkippedNoOwner  int
	SkippedBadWrite int
}

// Ingestor loads spreadsheet data into the repositories.
type Ingestor struct {
	customerRepo portsrepo.CustomerRepository
	loanRepo     portsrepo.LoanRepository
	logger       *slog.Logger
}

// NewIngestor creates an Ingestor over the given repositories.
func NewIngestor(customerRepo portsrepo.CustomerRepository, loanRepo portsrepo.LoanRepository, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		logger:       logger,
	}
}

// IngestCustomers loads customer rows from an xlsx workbook.
func (ing *Ingestor) IngestCustomers(ctx context.Context, path string) (Stats, error) {
	rows, err := readSheet(path)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	now := time.Now()
	for _, row := range rows {
		customerID := row.id(colCustomerID)
		if customerID == 0 {
			stats.SkippedNoID++
			continue
		}

		customer := domain.Customer{
			CustomerID:    customerID,
			FirstName:     row.text(colFirstName),
			LastName:      row.text(colLastName),
			PhoneNumber:   row.text(colPhoneNumber),
			Age:           row.integer(colAge),
			MonthlySalary: row.amount(colMonthlySalary),
			ApprovedLimit: row.amount(colApprovedLimit),
			CurrentDebt:   row.amount(colCurrentDebt),
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}

		if err := ing.customerRepo.ImportCustomer(ctx, customer); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				stats.SkippedDupe++
				continue
			}
			ing.logger.Error("Failed to import customer",
				slog.Int64("customer_id", customerID),
				slog.String("error", err.Error()))
			stats.SkippedBadWrite++
			continue
		}
		stats.Created++
	}

	ing.logger.Info("Customer ingestion completed",
		slog.Int("created", stats.Created),
		slog.Int("skipped_no_id", stats.SkippedNoID),
		slog.Int("skipped_duplicate", stats.SkippedDupe),
		slog.Int("skipped_write_error", stats.SkippedBadWrite))
	return stats, nil
}

// IngestLoans loads loan rows from an xlsx workbook. Loans referencing an
// unknown customer are skipped; a missing monthly repayment is backfilled
// through the EMI calculator.
func (ing *Ingestor) IngestLoans(ctx context.Context, path string) (Stats, error) {
	rows, err := readSheet(path)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	now := time.Now()
	for _, row := range rows {
		loanID := row.id(colLoanID)
		customerID := row.id(colCustomerID)
		if loanID == 0 || customerID == 0 {
			stats.SkippedNoID++
			continue
		}

		if _, err := ing.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				ing.logger.Warn("Customer not found for loan",
					slog.Int64("loan_id", loanID),
					slog.Int64("customer_id", customerID))
				stats.SkippedNoOwner++
				continue
			}
			return stats, err
		}

		loan := domain.Loan{
			LoanID:           loanID,
			CustomerID:       customerID,
			LoanAmount:       row.amount(colLoanAmount),
			Tenure:           row.integer(colTenure),
			InterestRate:     row.amount(colInterestRate),
			MonthlyRepayment: row.amount(colMonthlyPayment),
			EMIsPaidOnTime:   row.integer(colEMIsOnTime),
			StartDate:        row.date(colStartDate),
			EndDate:          row.date(colEndDate),
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		if loan.StartDate.IsZero() {
			loan.StartDate = now
		}

		// Historical rows sometimes lack the stored installment; recompute it
		// so the scoring model never sees a zero.
		if loan.MonthlyRepayment.IsZero() && loan.Tenure > 0 && loan.LoanAmount.IsPositive() {
			if emi, err := credit.Installment(loan.LoanAmount, loan.InterestRate, loan.Tenure); err == nil {
				loan.MonthlyRepayment = emi
			}
		}

		if err := ing.loanRepo.ImportLoan(ctx, loan); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				stats.SkippedDupe++
				continue
			}
			ing.logger.Error("Failed to import loan",
				slog.Int64("loan_id", loanID),
				slog.String("error", err.Error()))
			stats.SkippedBadWrite++
			continue
		}
		stats.Created++
	}

	ing.logger.Info("Loan ingestion completed",
		slog.Int("created", stats.Created),
		slog.Int("skipped_no_id", stats.SkippedNoID),
		slog.Int("skipped_duplicate", stats.SkippedDupe),
		slog.Int("skipped_no_owner", stats.SkippedNoOwner),
		slog.Int("skipped_write_error", stats.SkippedBadWrite))
	return stats, nil
}
