package credit

import "github.com/shopspring/decimal"

var (
	lakh            = decimal.NewFromInt(100_000)
	limitMultiplier = decimal.NewFromInt(36)
)

// RoundToNearestLakh rounds an amount to the nearest 100,000 currency units.
func RoundToNearestLakh(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(lakh).Round(0).Mul(lakh)
}

// ApprovedLimit derives a newly registered customer's sanctioned debt limit:
// 36 times the monthly salary, rounded to the nearest lakh.
func ApprovedLimit(monthlySalary decimal.Decimal) decimal.Decimal {
	return RoundToNearestLakh(monthlySalary.Mul(limitMultiplier))
}
