package wallet

import (
	"context"

	"github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"triscan/internal/domain"
)

// BybitWallet reads unified account balances from Bybit V5.
type BybitWallet struct {
	client *bybit.Client
}

func NewBybitWallet(client *bybit.Client) *BybitWallet {
	return &BybitWallet{client: client}
}

func (w *BybitWallet) Balances(ctx context.Context) ([]domain.Balance, error) {
	res, err := w.client.V5().Account().GetWalletBalance(bybit.AccountTypeV5("UNIFIED"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bybit wallet balance")
	}
	if len(res.Result.List) == 0 {
		return nil, nil
	}

	coins := res.Result.List[0].Coin
	balances := make([]domain.Balance, 0, len(coins))
	for _, coin := range coins {
		total, err := parseAmount(coin.WalletBalance)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse bybit balance for %s", coin.Coin)
		}
		locked, err := parseAmount(coin.Locked)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse bybit locked balance for %s", coin.Coin)
		}

		balance := domain.NewBalance(string(coin.Coin), total.Sub(locked), locked)
		if balance.IsEmpty() {
			continue
		}
		balances = append(balances, balance)
	}
	return balances, nil
}

// parseAmount treats the empty string as zero; Bybit omits amounts for
// some coin entries.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
