package wallet

import (
	"context"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"triscan/internal/domain"
)

// BinanceWallet reads spot account balances from Binance.
type BinanceWallet struct {
	client *binance.Client
}

func NewBinanceWallet(client *binance.Client) *BinanceWallet {
	return &BinanceWallet{client: client}
}

func (w *BinanceWallet) Balances(ctx context.Context) ([]domain.Balance, error) {
	account, err := w.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get binance account balance")
	}

	balances := make([]domain.Balance, 0, len(account.Balances))
	for _, b := range account.Balances {
		free, err := decimal.NewFromString(b.Free)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse free balance for %s", b.Asset)
		}
		locked, err := decimal.NewFromString(b.Locked)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse locked balance for %s", b.Asset)
		}

		balance := domain.NewBalance(b.Asset, free, locked)
		if balance.IsEmpty() {
			continue
		}
		balances = append(balances, balance)
	}
	return balances, nil
}
