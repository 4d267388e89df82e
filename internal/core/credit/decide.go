package credit

import (
	"fmt"

	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Score band thresholds and the minimum rates attached to the middle bands.
var (
	goodScore     = decimal.NewFromInt(50)
	mediumScore   = decimal.NewFromInt(30)
	poorScore     = decimal.NewFromInt(10)
	mediumMinRate = decimal.NewFromFloat(12.0)
	poorMinRate   = decimal.NewFromFloat(16.0)

	affordabilityCap = decimal.NewFromFloat(0.5) // combined EMIs vs monthly salary
)

// evaluation carries the facts the decision rules are judged against.
type evaluation struct {
	customer      domain.Customer
	score         decimal.Decimal
	requestedRate decimal.Decimal
	combinedEMI   decimal.Decimal // existing EMIs plus the proposed loan's EMI
}

// outcome is the verdict of a matched rule. A zero correctedRate means the
// requested rate stands.
type outcome struct {
	approved      bool
	correctedRate decimal.Decimal
}

// decisionRule is one rung of the eligibility ladder: a predicate and the
// outcome it forces. Rules are evaluated strictly in order, first match wins.
type decisionRule struct {
	name    string
	matches func(evaluation) bool
	decide  func(evaluation) outcome
}

var decisionLadder = []decisionRule{
	{
		name:    "over_limit",
		matches: func(ev evaluation) bool { return ev.customer.IsOverLimit() },
		decide:  func(ev evaluation) outcome { return outcome{approved: false} },
	},
	{
		name: "affordability_cap",
		matches: func(ev evaluation) bool {
			return ev.combinedEMI.GreaterThan(ev.customer.MonthlySalary.Mul(affordabilityCap))
		},
		decide: func(ev evaluation) outcome { return outcome{approved: false} },
	},
	{
		name:    "good_score",
		matches: func(ev evaluation) bool { return ev.score.GreaterThan(goodScore) },
		decide:  func(ev evaluation) outcome { return outcome{approved: true} },
	},
	{
		name:    "medium_score",
		matches: func(ev evaluation) bool { return ev.score.GreaterThan(mediumScore) },
		decide:  func(ev evaluation) outcome { return rateFloorOutcome(ev, mediumMinRate) },
	},
	{
		name:    "poor_score",
		matches: func(ev evaluation) bool { return ev.score.GreaterThan(poorScore) },
		decide:  func(ev evaluation) outcome { return rateFloorOutcome(ev, poorMinRate) },
	},
	{
		name:    "rejected_score",
		matches: func(ev evaluation) bool { return true },
		decide:  func(ev evaluation) outcome { return outcome{approved: false} },
	},
}

// rateFloorOutcome approves only when the requested rate already exceeds the
// band's floor; otherwise it rejects and reports the floor as the corrected
// rate.
func rateFloorOutcome(ev evaluation, floor decimal.Decimal) outcome {
	if ev.requestedRate.GreaterThan(floor) {
		return outcome{approved: true}
	}
	return outcome{approved: false, correctedRate: floor}
}

// Decide evaluates a loan proposal against the customer's profile and loan
// history and returns the resulting eligibility decision. It is a pure
// function: the caller supplies the full history snapshot and the as-of year,
// and applying the decision (persisting a loan, bumping the debt) is the
// caller's responsibility.
//
// The returned decision's MonthlyInstallment is computed at the in-force
// rate: the requested rate when approved, the corrected rate when rejected.
func Decide(customer domain.Customer, history []domain.Loan, proposal domain.LoanProposal, asOfYear int) (domain.EligibilityDecision, error) {
	requestedEMI, err := Installment(proposal.LoanAmount, proposal.InterestRate, proposal.Tenure)
	if err != nil {
		return domain.EligibilityDecision{}, fmt.Errorf("invalid loan proposal: %w", err)
	}

	combinedEMI := requestedEMI
	for _, loan := range history {
		combinedEMI = combinedEMI.Add(loan.MonthlyRepayment)
	}

	ev := evaluation{
		customer:      customer,
		score:         Score(customer, history, asOfYear),
		requestedRate: proposal.InterestRate,
		combinedEMI:   combinedEMI,
	}

	var out outcome
	for _, rule := range decisionLadder {
		if rule.matches(ev) {
			out = rule.decide(ev)
			break
		}
	}

	correctedRate := out.correctedRate
	if correctedRate.IsZero() {
		correctedRate = proposal.InterestRate
	}

	// Quote the installment at whichever rate is in force.
	installment := requestedEMI
	if !out.approved && !correctedRate.Equal(proposal.InterestRate) {
		installment, err = Installment(proposal.LoanAmount, correctedRate, proposal.Tenure)
		if err != nil {
			return domain.EligibilityDecision{}, err
		}
	}

	return domain.EligibilityDecision{
		Approved:              out.approved,
		CreditScore:           ev.score,
		InterestRate:          proposal.InterestRate,
		CorrectedInterestRate: correctedRate,
		MonthlyInstallment:    installment,
	}, nil
}
