package domain

import (
	"github.com/shopspring/decimal"
)

// Customer represents a registered borrower within the core domain.
// This is the primary representation used by services and the credit engine.
type Customer struct {
	CustomerID    int64           `json:"customerID"`    // Primary Key (sequence or spreadsheet-supplied)
	FirstName     string          `json:"firstName"`     //
	LastName      string          `json:"lastName"`      //
	PhoneNumber   string          `json:"phoneNumber"`   // Unique; may be empty for imported rows
	Age           int             `json:"age"`           //
	MonthlySalary decimal.Decimal `json:"monthlySalary"` // Gross monthly income
	ApprovedLimit decimal.Decimal `json:"approvedLimit"` // Maximum total sanctioned debt
	CurrentDebt   decimal.Decimal `json:"currentDebt"`   // Sum of principal across active loans
	AuditFields
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// IsOverLimit reports whether the customer's outstanding debt exceeds the
// sanctioned limit. Not a data error; the credit engine treats it as a
// maximal-risk business signal.
func (c Customer) IsOverLimit() bool {
	return c.CurrentDebt.GreaterThan(c.ApprovedLimit)
}
