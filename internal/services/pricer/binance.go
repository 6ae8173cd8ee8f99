package pricer

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// BinancePricer fetches spot ticker prices from Binance.
type BinancePricer struct {
	client *binance.Client
}

func NewBinancePricer(client *binance.Client) *BinancePricer {
	return &BinancePricer{client: client}
}

func (p *BinancePricer) Prices(ctx context.Context) (map[string]decimal.Decimal, error) {
	tickers, err := p.client.NewListPricesService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get binance ticker prices")
	}

	prices := make(map[string]decimal.Decimal, len(tickers))
	for _, ticker := range tickers {
		price, err := decimal.NewFromString(ticker.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse binance price for %s", ticker.Symbol)
		}
		prices[ticker.Symbol] = price
	}
	return prices, nil
}
