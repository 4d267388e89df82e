package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan represents a single loan record, historical or freshly created.
// Historical records are read-only inputs to the credit engine.
type Loan struct {
	LoanID            int64           `json:"loanID"`            // Primary Key
	CustomerID        int64           `json:"customerID"`        // FK -> customers.customer_id
	LoanAmount        decimal.Decimal `json:"loanAmount"`        // Principal
	Tenure            int             `json:"tenure"`            // Months
	InterestRate      decimal.Decimal `json:"interestRate"`      // Annual percentage
	MonthlyRepayment  decimal.Decimal `json:"monthlyRepayment"`  // EMI computed at creation, immutable
	EMIsPaidOnTime    int             `json:"emisPaidOnTime"`    //
	StartDate         time.Time       `json:"startDate"`         //
	EndDate           time.Time       `json:"endDate"`           // Zero value when unknown
	AuditFields
}

// RepaymentsLeft returns the number of EMIs still outstanding.
func (l Loan) RepaymentsLeft() int {
	return l.Tenure - l.EMIsPaidOnTime
}
