package wallet

import (
	"context"

	"github.com/pkg/errors"
	hyperliquid "github.com/sonirico/go-hyperliquid"

	"triscan/internal/domain"
)

// HyperliquidWallet reads spot balances from Hyperliquid.
type HyperliquidWallet struct {
	info        *hyperliquid.Info
	accountAddr string
}

func NewHyperliquidWallet(info *hyperliquid.Info, accountAddr string) *HyperliquidWallet {
	return &HyperliquidWallet{info: info, accountAddr: accountAddr}
}

func (w *HyperliquidWallet) Balances(ctx context.Context) ([]domain.Balance, error) {
	if w.info == nil {
		return nil, errors.New("hyperliquid info client is nil")
	}

	st, err := w.info.SpotUserState(ctx, w.accountAddr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get hyperliquid spot user state")
	}

	balances := make([]domain.Balance, 0, len(st.Balances))
	for _, b := range st.Balances {
		total, err := parseAmount(b.Total)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse hyperliquid balance for %s", b.Coin)
		}
		locked, err := parseAmount(b.Hold)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse hyperliquid hold for %s", b.Coin)
		}

		balance := domain.NewBalance(b.Coin, total.Sub(locked), locked)
		if balance.IsEmpty() {
			continue
		}
		balances = append(balances, balance)
	}
	return balances, nil
}
