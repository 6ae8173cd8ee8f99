package pricer

import (
	"context"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// BybitPricer fetches spot ticker prices from Bybit V5 market API.
type BybitPricer struct {
	client *bybit.Client
}

func NewBybitPricer(client *bybit.Client) *BybitPricer {
	return &BybitPricer{client: client}
}

func (p *BybitPricer) Prices(ctx context.Context) (map[string]decimal.Decimal, error) {
	result, err := p.client.V5().Market().GetTickers(bybit.V5GetTickersParam{
		Category: "spot",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bybit spot tickers")
	}
	if len(result.Result.Spot.List) == 0 {
		return nil, errors.New("bybit API returned no spot tickers")
	}

	prices := make(map[string]decimal.Decimal, len(result.Result.Spot.List))
	for _, ticker := range result.Result.Spot.List {
		price, err := decimal.NewFromString(ticker.LastPrice)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse bybit price for %s", ticker.Symbol)
		}
		prices[string(ticker.Symbol)] = price
	}
	return prices, nil
}
