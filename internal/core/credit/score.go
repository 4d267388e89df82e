package credit

import (
	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BaselineScore is assigned to customers with no loan history. It sits just
// above the approval threshold so new customers are not penalized for the
// absence of a track record.
var BaselineScore = decimal.NewFromInt(51)

var maxScore = decimal.NewFromInt(100)

// historyStats is the aggregate view of a customer's loan history consumed by
// the score components.
type historyStats struct {
	totalLoans     int64
	onTimeLoans    int64 // loans with at least one EMI paid on time
	recentLoans    int64 // loans started in the as-of year
	totalPrincipal decimal.Decimal
	monthlySalary  decimal.Decimal
}

// scoreComponent is one weighted term of the credit score. ratio must return
// a value in [0,1]; the component contributes ratio*weight points.
type scoreComponent struct {
	name   string
	weight decimal.Decimal
	ratio  func(historyStats) decimal.Decimal
}

// scoreComponents is the full scoring table. Keeping each weight and cap in
// its own entry lets every term be exercised in isolation.
var scoreComponents = []scoreComponent{
	{
		name:   "on_time_repayment",
		weight: decimal.NewFromInt(30),
		ratio: func(st historyStats) decimal.Decimal {
			return decimal.NewFromInt(st.onTimeLoans).Div(decimal.NewFromInt(st.totalLoans))
		},
	},
	{
		name:   "loan_count_experience",
		weight: decimal.NewFromInt(20),
		ratio: func(st historyStats) decimal.Decimal {
			// Maxes out at 5+ loans.
			return capRatio(decimal.NewFromInt(st.totalLoans).Div(decimal.NewFromInt(5)))
		},
	},
	{
		name:   "recent_activity",
		weight: decimal.NewFromInt(20),
		ratio: func(st historyStats) decimal.Decimal {
			// Maxes out at 3+ loans started in the as-of year.
			return capRatio(decimal.NewFromInt(st.recentLoans).Div(decimal.NewFromInt(3)))
		},
	},
	{
		name:   "borrowed_volume",
		weight: decimal.NewFromInt(30),
		ratio: func(st historyStats) decimal.Decimal {
			if st.monthlySalary.LessThanOrEqual(decimal.Zero) {
				return decimal.Zero
			}
			twoYearsSalary := st.monthlySalary.Mul(monthsPerYear).Mul(decimal.NewFromInt(2))
			return capRatio(st.totalPrincipal.Div(twoYearsSalary))
		},
	},
}

func capRatio(d decimal.Decimal) decimal.Decimal {
	if d.GreaterThan(one) {
		return one
	}
	return d
}

// Score computes a 0-100 creditworthiness score for the customer from their
// loan history, rounded to two decimal places.
//
// Over-limit customers (current debt above the approved limit) score 0
// regardless of history. Customers with no history score BaselineScore.
// Otherwise the score is the sum of the four weighted components in
// scoreComponents, capped at 100.
//
// asOfYear anchors the recent-activity component. It is an explicit parameter
// so the function stays deterministic; callers derive it from the current
// date, this package never reads a clock.
func Score(customer domain.Customer, history []domain.Loan, asOfYear int) decimal.Decimal {
	if customer.IsOverLimit() {
		return decimal.Zero
	}
	if len(history) == 0 {
		return BaselineScore
	}

	st := historyStats{
		totalLoans:     int64(len(history)),
		totalPrincipal: decimal.Zero,
		monthlySalary:  customer.MonthlySalary,
	}
	for _, loan := range history {
		if loan.EMIsPaidOnTime >= 1 {
			st.onTimeLoans++
		}
		if loan.StartDate.Year() == asOfYear {
			st.recentLoans++
		}
		st.totalPrincipal = st.totalPrincipal.Add(loan.LoanAmount)
	}

	score := decimal.Zero
	for _, component := range scoreComponents {
		score = score.Add(component.ratio(st).Mul(component.weight))
	}

	score = score.Round(2)
	if score.GreaterThan(maxScore) {
		return maxScore
	}
	return score
}
