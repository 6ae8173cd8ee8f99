// Package detector evaluates conversion cycles against a price snapshot.
package detector

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"triscan/internal/domain"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Evaluate computes the compounded conversion rate of one cycle over
// the given price snapshot. A cycle whose legs are not all quoted in
// the snapshot is skipped; missing pairs are expected, not an error.
//
// The cycle qualifies iff (rateAB*rateBC*rateCA - 1) * 100 is at least
// minProfit (inclusive). A qualifying cycle yields exactly one
// opportunity record owned by ownerID.
func Evaluate(prices map[string]decimal.Decimal, c domain.Cycle, minProfit decimal.Decimal, ownerID string) (domain.Opportunity, bool) {
	rateAB, ok := prices[c.PairAB()]
	if !ok {
		return domain.Opportunity{}, false
	}
	rateBC, ok := prices[c.PairBC()]
	if !ok {
		return domain.Opportunity{}, false
	}
	rateCA, ok := prices[c.PairCA()]
	if !ok {
		return domain.Opportunity{}, false
	}

	compounded := rateAB.Mul(rateBC).Mul(rateCA)
	profit := compounded.Sub(one).Mul(hundred)

	if profit.LessThan(minProfit) {
		return domain.Opportunity{}, false
	}

	return domain.Opportunity{
		ID:            uuid.NewString(),
		CurrencyA:     c.A,
		CurrencyB:     c.B,
		CurrencyC:     c.C,
		RateAB:        rateAB,
		RateBC:        rateBC,
		RateCA:        rateCA,
		ProfitPercent: profit,
		Status:        domain.OpportunityStatusActive,
		OwnerID:       ownerID,
		CreatedAt:     time.Now().UTC(),
	}, true
}

// Profit returns the profit percentage implied by the three leg rates.
func Profit(rateAB, rateBC, rateCA decimal.Decimal) decimal.Decimal {
	return rateAB.Mul(rateBC).Mul(rateCA).Sub(one).Mul(hundred)
}
