// Package wallet fetches exchange account balances.
package wallet

import (
	"context"

	"triscan/internal/domain"
)

// Wallet supplies the non-empty asset balances of one exchange
// account. Entries with zero free and zero locked amounts are
// excluded; Total is always Free + Locked.
type Wallet interface {
	Balances(ctx context.Context) ([]domain.Balance, error)
}
