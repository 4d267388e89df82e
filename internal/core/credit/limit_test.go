package credit_test

import (
	"testing"

	"github.com/ishan22399/Credit-Approval-System/internal/core/credit"
	"github.com/stretchr/testify/assert"
)

func TestRoundToNearestLakh(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1800000", "1800000"},
		{"1849999", "1800000"},
		{"1850000", "1900000"},
		{"49999", "0"},
		{"50000", "100000"},
	}

	for _, tc := range tests {
		got := credit.RoundToNearestLakh(dec(tc.in))
		assert.True(t, got.Equal(dec(tc.want)), "%s: want %s, got %s", tc.in, tc.want, got)
	}
}

func TestApprovedLimit(t *testing.T) {
	// 36 x 50,000 lands exactly on a lakh boundary.
	assert.True(t, credit.ApprovedLimit(dec("50000")).Equal(dec("1800000")))

	// 36 x 41,000 = 1,476,000 rounds up to 1,500,000.
	assert.True(t, credit.ApprovedLimit(dec("41000")).Equal(dec("1500000")))
}
