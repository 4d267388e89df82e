package importer_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ishan22399/Credit-Approval-System/internal/apperrors"
	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	"github.com/ishan22399/Credit-Approval-System/internal/importer"
)

// --- Repository mocks ---

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) (int64, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByPhone(ctx context.Context, phoneNumber string) (*domain.Customer, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ImportCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID int64) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoansByCustomer(ctx context.Context, customerID int64) ([]domain.Loan, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) SaveLoanAndIncrementDebt(ctx context.Context, loan domain.Loan, expectedDebt decimal.Decimal) (int64, error) {
	args := m.Called(ctx, loan, expectedDebt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) ImportLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

// writeWorkbook builds a single-sheet xlsx file with the given header row and
// data rows, mirroring the layout of the source workbooks.
func writeWorkbook(t *testing.T, name string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func newTestIngestor(customerRepo *MockCustomerRepository, loanRepo *MockLoanRepository) *importer.Ingestor {
	return importer.NewIngestor(customerRepo, loanRepo, slog.Default())
}

// --- Test Cases ---

func TestIngestCustomers(t *testing.T) {
	ctx := context.Background()
	path := writeWorkbook(t, "customer_data.xlsx", [][]interface{}{
		{"Customer ID", "First Name", "Last Name", "Phone Number", "Age", "Monthly Salary", "Approved Limit", "Current Debt"},
		{1, "Aarav", "Sharma", "9876543210", 32, 50000, 1800000, 0},
		{"", "No", "ID", "9876500000", 25, 30000, 1100000, 0},
		{3, "Meera", "Iyer", "9876511111", 28, 42000, 1500000, 120000},
	})

	customerRepo := new(MockCustomerRepository)
	loanRepo := new(MockLoanRepository)

	customerRepo.On("ImportCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerID == 1 && c.FirstName == "Aarav" &&
			c.MonthlySalary.Equal(decimal.NewFromInt(50000)) &&
			c.ApprovedLimit.Equal(decimal.NewFromInt(1800000))
	})).Return(nil).Once()
	// Customer 3 already exists.
	customerRepo.On("ImportCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.CustomerID == 3
	})).Return(apperrors.ErrDuplicate).Once()

	stats, err := newTestIngestor(customerRepo, loanRepo).IngestCustomers(ctx, path)

	require.NoError(t, err)
	require.Equal(t, 1, stats.Created)
	require.Equal(t, 1, stats.SkippedNoID)
	require.Equal(t, 1, stats.SkippedDupe)

	customerRepo.AssertExpectations(t)
}

func TestIngestLoans(t *testing.T) {
	ctx := context.Background()
	path := writeWorkbook(t, "loan_data.xlsx", [][]interface{}{
		{"Customer ID", "Loan ID", "Loan Amount", "Tenure", "Interest Rate", "Monthly payment", "EMIs paid on Time", "Date of Approval", "End Date"},
		{1, 100, 400000, 24, 11.5, 18747.94, 12, "2023-05-01", "2025-05-01"},
		{9, 101, 100000, 12, 10, 8791.59, 0, "2024-01-10", "2025-01-10"},
	})

	customerRepo := new(MockCustomerRepository)
	loanRepo := new(MockLoanRepository)

	owner := &domain.Customer{CustomerID: 1}
	customerRepo.On("FindCustomerByID", ctx, int64(1)).Return(owner, nil).Once()
	// Loan 101 references a customer that was never imported.
	customerRepo.On("FindCustomerByID", ctx, int64(9)).Return(nil, apperrors.ErrNotFound).Once()

	loanRepo.On("ImportLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		return l.LoanID == 100 && l.CustomerID == 1 &&
			l.Tenure == 24 && l.EMIsPaidOnTime == 12 &&
			l.MonthlyRepayment.Equal(decimal.RequireFromString("18747.94")) &&
			l.StartDate.Equal(time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	stats, err := newTestIngestor(customerRepo, loanRepo).IngestLoans(ctx, path)

	require.NoError(t, err)
	require.Equal(t, 1, stats.Created)
	require.Equal(t, 1, stats.SkippedNoOwner)

	customerRepo.AssertExpectations(t)
	loanRepo.AssertExpectations(t)
}

func TestIngestLoans_BackfillsMissingInstallment(t *testing.T) {
	ctx := context.Background()
	path := writeWorkbook(t, "loan_data.xlsx", [][]interface{}{
		{"Customer ID", "Loan ID", "Loan Amount", "Tenure", "Interest Rate", "Monthly payment", "EMIs paid on Time", "Date of Approval", "End Date"},
		{1, 200, 100000, 12, 10, "", 0, "2024-01-10", ""},
	})

	customerRepo := new(MockCustomerRepository)
	loanRepo := new(MockLoanRepository)

	customerRepo.On("FindCustomerByID", ctx, int64(1)).Return(&domain.Customer{CustomerID: 1}, nil).Once()
	loanRepo.On("ImportLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		// Recomputed annuity EMI for 100,000 at 10% over 12 months.
		return l.LoanID == 200 && l.MonthlyRepayment.Equal(decimal.RequireFromString("8791.59"))
	})).Return(nil).Once()

	stats, err := newTestIngestor(customerRepo, loanRepo).IngestLoans(ctx, path)

	require.NoError(t, err)
	require.Equal(t, 1, stats.Created)

	loanRepo.AssertExpectations(t)
}

func TestIngestCustomers_MissingWorkbook(t *testing.T) {
	ctx := context.Background()
	ing := newTestIngestor(new(MockCustomerRepository), new(MockLoanRepository))

	_, err := ing.IngestCustomers(ctx, filepath.Join(t.TempDir(), "nope.xlsx"))

	require.Error(t, err)
}
