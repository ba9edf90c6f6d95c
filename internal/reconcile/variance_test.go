package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariance(t *testing.T) {
	tests := []struct {
		name        string
		quoted      string
		estimated   string
		wantAmount  string
		wantPercent string
	}{
		{"over estimate", "1200", "1000", "200", "20"},
		{"under estimate", "750", "1000", "-250", "-25"},
		{"equal", "1000", "1000", "0", "0"},
		{"unquoted", "0", "400", "-400", "-100"},
		{"rounds to two places", "1000", "3000", "-2000", "-66.67"},
		// A zero estimate has no meaningful percentage; report 0 by policy.
		{"zero estimate", "300", "0", "300", "0"},
		{"both zero", "0", "0", "0", "0"},
		{"negative estimate", "10", "-5", "15", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, pct := Variance(dec(tt.quoted), dec(tt.estimated))
			assert.True(t, amount.Equal(dec(tt.wantAmount)), "amount = %s, want %s", amount, tt.wantAmount)
			assert.True(t, pct.Equal(dec(tt.wantPercent)), "percent = %s, want %s", pct, tt.wantPercent)
		})
	}
}

func TestVariance_SignMatchesQuoteVsEstimate(t *testing.T) {
	values := []string{"0", "0.01", "99.99", "100", "100.01", "2500"}
	for _, q := range values {
		for _, e := range values {
			amount, _ := Variance(dec(q), dec(e))
			assert.Equal(t, dec(q).GreaterThan(dec(e)), amount.IsPositive(), "quoted=%s estimated=%s", q, e)
		}
	}
}
