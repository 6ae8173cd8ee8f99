package pricer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	hyperliquid "github.com/sonirico/go-hyperliquid"
)

// HyperliquidPricer builds a snapshot from Hyperliquid mid prices.
// Mids are keyed by base coin; snapshot keys are written as <COIN>USD
// since Hyperliquid quotes everything against USD.
type HyperliquidPricer struct {
	info *hyperliquid.Info
}

func NewHyperliquidPricer(info *hyperliquid.Info) *HyperliquidPricer {
	return &HyperliquidPricer{info: info}
}

func (p *HyperliquidPricer) Prices(ctx context.Context) (map[string]decimal.Decimal, error) {
	if p.info == nil {
		return nil, errors.New("hyperliquid info client is nil")
	}

	mids, err := p.info.AllMids(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get hyperliquid mid prices")
	}

	prices := make(map[string]decimal.Decimal, len(mids))
	for coin, mid := range mids {
		if mid == "" {
			continue
		}
		price, err := decimal.NewFromString(mid)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse hyperliquid mid price for %s", coin)
		}
		prices[coin+"USD"] = price
	}
	return prices, nil
}
