package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewBalanceTotal(t *testing.T) {
	b := NewBalance("ETH", decimal.RequireFromString("0.5"), decimal.RequireFromString("0.25"))

	assert.Equal(t, "ETH", b.Asset)
	assert.True(t, b.Total.Equal(decimal.RequireFromString("0.75")))
}

func TestBalanceIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		free   string
		locked string
		empty  bool
	}{
		{"both zero", "0", "0", true},
		{"free only", "0.5", "0", false},
		{"locked only", "0", "0.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBalance("BTC", decimal.RequireFromString(tt.free), decimal.RequireFromString(tt.locked))
			assert.Equal(t, tt.empty, b.IsEmpty())
		})
	}
}

func TestCyclePairSymbols(t *testing.T) {
	c := Cycle{A: "BTC", B: "ETH", C: "USDT"}

	assert.Equal(t, "BTCETH", c.PairAB())
	assert.Equal(t, "ETHUSDT", c.PairBC())
	assert.Equal(t, "USDTBTC", c.PairCA())
	assert.Equal(t, "BTC->ETH->USDT->BTC", c.String())
}
