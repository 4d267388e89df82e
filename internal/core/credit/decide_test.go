package credit_test

import (
	"errors"
	"testing"

	"github.com/ishan22399/Credit-Approval-System/internal/apperrors"
	"github.com/ishan22399/Credit-Approval-System/internal/core/credit"
	"github.com/ishan22399/Credit-Approval-System/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proposal(amount, rate string, tenure int) domain.LoanProposal {
	return domain.LoanProposal{
		LoanAmount:   dec(amount),
		InterestRate: dec(rate),
		Tenure:       tenure,
	}
}

// mediumBandHistory yields a score of 43.03 for a 50,000 salary: both loans
// on time (30) + two loans (8) + none recent + 201,000 borrowed (5.03).
func mediumBandHistory() []domain.Loan {
	return []domain.Loan{
		loanFixture("100000", 3, 2019),
		loanFixture("101000", 2, 2020),
	}
}

func TestDecide_NewCustomerApprovedOnBaseline(t *testing.T) {
	customer := customerFixture("50000", "1800000", "0")

	decision, err := credit.Decide(customer, nil, proposal("100000", "10", 12), asOfYear)
	require.NoError(t, err)

	assert.True(t, decision.Approved)
	assert.True(t, decision.CreditScore.Equal(credit.BaselineScore), "score %s", decision.CreditScore)
	assert.True(t, decision.CorrectedInterestRate.Equal(dec("10")))
	assert.True(t, decision.MonthlyInstallment.Equal(dec("8791.59")), "installment %s", decision.MonthlyInstallment)
}

func TestDecide_OverLimitDominatesGoodScore(t *testing.T) {
	// A repayment record that would score well on its own.
	history := []domain.Loan{
		loanFixture("100000", 12, asOfYear),
		loanFixture("100000", 12, asOfYear),
		loanFixture("100000", 12, 2022),
	}
	customer := customerFixture("50000", "1800000", "2000000")

	decision, err := credit.Decide(customer, history, proposal("50000", "10", 12), asOfYear)
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.True(t, decision.CreditScore.IsZero(), "score %s", decision.CreditScore)
	assert.True(t, decision.CorrectedInterestRate.Equal(dec("10")), "rate must stand unchanged, got %s", decision.CorrectedInterestRate)
}

func TestDecide_AffordabilityCap(t *testing.T) {
	customer := customerFixture("50000", "1800000", "500000")
	// Existing EMIs of 24,000 leave almost no headroom against the 25,000 cap.
	existing := loanFixture("500000", 6, 2023)
	existing.Tenure = 24
	existing.MonthlyRepayment = dec("24000")
	history := []domain.Loan{existing}

	decision, err := credit.Decide(customer, history, proposal("200000", "10", 12), asOfYear)
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.True(t, decision.CorrectedInterestRate.Equal(dec("10")))
}

func TestDecide_MediumBandRejectsBelowFloor(t *testing.T) {
	customer := customerFixture("50000", "1800000", "100000")

	decision, err := credit.Decide(customer, mediumBandHistory(), proposal("100000", "8", 12), asOfYear)
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.True(t, decision.CreditScore.GreaterThan(dec("30")) && !decision.CreditScore.GreaterThan(dec("50")),
		"score %s must fall in the medium band", decision.CreditScore)
	assert.True(t, decision.CorrectedInterestRate.Equal(dec("12")), "corrected rate %s", decision.CorrectedInterestRate)
	// The quoted installment reflects the corrected 12% rate, not the requested 8%.
	assert.True(t, decision.MonthlyInstallment.Equal(dec("8884.88")), "installment %s", decision.MonthlyInstallment)
}

func TestDecide_MediumBandApprovesAboveFloor(t *testing.T) {
	customer := customerFixture("50000", "1800000", "100000")

	decision, err := credit.Decide(customer, mediumBandHistory(), proposal("100000", "15", 12), asOfYear)
	require.NoError(t, err)

	assert.True(t, decision.Approved)
	assert.True(t, decision.CorrectedInterestRate.Equal(dec("15")))
	// Approved at the requested rate; 100,000 at 15% over 12 months.
	assert.True(t, decision.MonthlyInstallment.Equal(dec("9025.83")), "installment %s", decision.MonthlyInstallment)
}

func TestDecide_PoorBandUsesSixteenPercentFloor(t *testing.T) {
	// One of four loans on time (7.5) + four loans (16) + none recent +
	// 41,000 borrowed (1.03) puts the score at 24.53, inside (10, 30].
	history := []domain.Loan{
		loanFixture("10000", 2, 2019),
		loanFixture("10000", 0, 2019),
		loanFixture("10000", 0, 2020),
		loanFixture("11000", 0, 2021),
	}
	customer := customerFixture("50000", "1800000", "100000")

	rejected, err := credit.Decide(customer, history, proposal("100000", "14", 12), asOfYear)
	require.NoError(t, err)
	assert.False(t, rejected.Approved)
	assert.True(t, rejected.CorrectedInterestRate.Equal(dec("16")), "corrected rate %s", rejected.CorrectedInterestRate)

	approved, err := credit.Decide(customer, history, proposal("100000", "17", 12), asOfYear)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	assert.True(t, approved.CorrectedInterestRate.Equal(dec("17")))
}

func TestDecide_BottomBandRejectsUnconditionally(t *testing.T) {
	// No loan on time, one old loan, negligible volume: 0 + 4 + 0 + ~0.
	history := []domain.Loan{loanFixture("1000", 0, 2018)}
	customer := customerFixture("50000", "1800000", "100000")

	decision, err := credit.Decide(customer, history, proposal("100000", "30", 12), asOfYear)
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.True(t, decision.CorrectedInterestRate.Equal(dec("30")), "rate must stand unchanged, got %s", decision.CorrectedInterestRate)
}

func TestDecide_InvalidProposals(t *testing.T) {
	customer := customerFixture("50000", "1800000", "0")

	tests := []struct {
		name     string
		proposal domain.LoanProposal
	}{
		{"zero principal", proposal("0", "10", 12)},
		{"negative principal", proposal("-100", "10", 12)},
		{"zero tenure", proposal("1000", "10", 0)},
		{"negative rate", proposal("1000", "-2", 12)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := credit.Decide(customer, nil, tc.proposal, asOfYear)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
		})
	}
}

func TestEligibilityDecision_EffectiveRate(t *testing.T) {
	d := domain.EligibilityDecision{InterestRate: dec("8"), CorrectedInterestRate: dec("12")}
	assert.True(t, d.EffectiveRate().Equal(dec("12")))

	d = domain.EligibilityDecision{InterestRate: dec("15"), CorrectedInterestRate: dec("12")}
	assert.True(t, d.EffectiveRate().Equal(dec("15")))
}
