package reconcile

import "github.com/shopspring/decimal"

// DefaultFullCoverageRatio is the fraction of a line item's estimated cost a
// single accepted quote must reach to count as full coverage.
const DefaultFullCoverageRatio = "0.90"

// Policy holds the tunable knobs of a reconciliation run. The zero value is
// usable: a zero FullCoverageRatio treats any single accepted quote as full
// coverage, and zero risk weights score every item 0.
type Policy struct {
	FullCoverageRatio decimal.Decimal
	Risk              RiskWeights
}

// DefaultPolicy returns the policy used when no configuration overrides it.
func DefaultPolicy() Policy {
	return Policy{
		FullCoverageRatio: decimal.RequireFromString(DefaultFullCoverageRatio),
		Risk:              DefaultRiskWeights(),
	}
}
