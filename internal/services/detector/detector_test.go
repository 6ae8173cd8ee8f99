package detector

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triscan/internal/domain"
)

func snapshot(pairs map[string]string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(pairs))
	for symbol, price := range pairs {
		out[symbol] = decimal.RequireFromString(price)
	}
	return out
}

func TestEvaluateQualifies(t *testing.T) {
	prices := snapshot(map[string]string{
		"AB": "1.0",
		"BC": "1.0",
		"CA": "1.02",
	})
	c := domain.Cycle{A: "A", B: "B", C: "C"}

	opp, ok := Evaluate(prices, c, decimal.NewFromInt(1), "user-1")
	require.True(t, ok)

	assert.Equal(t, "A", opp.CurrencyA)
	assert.Equal(t, "B", opp.CurrencyB)
	assert.Equal(t, "C", opp.CurrencyC)
	assert.True(t, opp.ProfitPercent.Equal(decimal.RequireFromString("2")),
		"profit = %s", opp.ProfitPercent)
	assert.Equal(t, domain.OpportunityStatusActive, opp.Status)
	assert.Equal(t, "user-1", opp.OwnerID)
	assert.NotEmpty(t, opp.ID)
	assert.False(t, opp.CreatedAt.IsZero())
}

func TestEvaluateBelowThreshold(t *testing.T) {
	prices := snapshot(map[string]string{
		"AB": "1.0",
		"BC": "1.0",
		"CA": "1.02",
	})
	c := domain.Cycle{A: "A", B: "B", C: "C"}

	_, ok := Evaluate(prices, c, decimal.NewFromInt(3), "user-1")
	assert.False(t, ok)
}

func TestEvaluateThresholdInclusive(t *testing.T) {
	prices := snapshot(map[string]string{
		"AB": "1.0",
		"BC": "1.0",
		"CA": "1.02",
	})
	c := domain.Cycle{A: "A", B: "B", C: "C"}

	// profit is exactly 2%, threshold comparison is inclusive
	opp, ok := Evaluate(prices, c, decimal.RequireFromString("2"), "user-1")
	require.True(t, ok)
	assert.True(t, opp.ProfitPercent.Equal(decimal.RequireFromString("2")))
}

func TestEvaluateMissingPairSkips(t *testing.T) {
	c := domain.Cycle{A: "A", B: "B", C: "C"}
	threshold := decimal.NewFromInt(-100)

	tests := []struct {
		name   string
		prices map[string]string
	}{
		{"missing AB", map[string]string{"BC": "1.0", "CA": "9.0"}},
		{"missing BC", map[string]string{"AB": "1.0", "CA": "9.0"}},
		{"missing CA", map[string]string{"AB": "1.0", "BC": "9.0"}},
		{"empty snapshot", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Evaluate(snapshot(tt.prices), c, threshold, "user-1")
			assert.False(t, ok)
		})
	}
}

func TestEvaluateNegativeProfitCycle(t *testing.T) {
	prices := snapshot(map[string]string{
		"AB": "0.5",
		"BC": "1.0",
		"CA": "1.0",
	})
	c := domain.Cycle{A: "A", B: "B", C: "C"}

	_, ok := Evaluate(prices, c, decimal.Zero, "user-1")
	assert.False(t, ok)

	opp, ok := Evaluate(prices, c, decimal.NewFromInt(-60), "user-1")
	require.True(t, ok)
	assert.True(t, opp.ProfitPercent.Equal(decimal.RequireFromString("-50")))
}

func TestProfitDeterministic(t *testing.T) {
	rAB := decimal.RequireFromString("0.0523")
	rBC := decimal.RequireFromString("19.1842")
	rCA := decimal.RequireFromString("1.00071")

	first := Profit(rAB, rBC, rCA)
	second := Profit(rAB, rBC, rCA)

	assert.Equal(t, first.String(), second.String())
}
