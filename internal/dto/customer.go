package dto

import (
	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterCustomerRequest defines the data needed to register a customer.
// The approved limit is derived server-side, never accepted from the client.
type RegisterCustomerRequest struct {
	FirstName     string          `json:"first_name" binding:"required"`
	LastName      string          `json:"last_name" binding:"required"`
	PhoneNumber   string          `json:"phone_number" binding:"required"`
	Age           int             `json:"age" binding:"required,gt=0"`
	MonthlySalary decimal.Decimal `json:"monthly_income" binding:"required,gt=0"`
}

// RegisterCustomerResponse mirrors the registration endpoint's wire contract.
type RegisterCustomerResponse struct {
	CustomerID    int64           `json:"customer_id"`
	Name          string          `json:"name"`
	Age           int             `json:"age"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
	PhoneNumber   string          `json:"phone_number"`
}

// ToRegisterCustomerResponse converts a domain.Customer to the registration response DTO.
func ToRegisterCustomerResponse(c *domain.Customer) RegisterCustomerResponse {
	return RegisterCustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.Name(),
		Age:           c.Age,
		MonthlyIncome: c.MonthlySalary,
		ApprovedLimit: c.ApprovedLimit,
		PhoneNumber:   c.PhoneNumber,
	}
}

// CustomerSummary is the customer block embedded in loan detail responses.
type CustomerSummary struct {
	CustomerID    int64           `json:"customer_id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	PhoneNumber   string          `json:"phone_number"`
	Age           int             `json:"age"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
	CurrentDebt   decimal.Decimal `json:"current_debt"`
}

// ToCustomerSummary converts a domain.Customer to its embedded summary form.
func ToCustomerSummary(c *domain.Customer) CustomerSummary {
	return CustomerSummary{
		CustomerID:    c.CustomerID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		PhoneNumber:   c.PhoneNumber,
		Age:           c.Age,
		MonthlySalary: c.MonthlySalary,
		ApprovedLimit: c.ApprovedLimit,
		CurrentDebt:   c.CurrentDebt,
	}
}
