package domain

import "github.com/shopspring/decimal"

// Balance is one non-empty asset balance on an exchange account.
type Balance struct {
	Asset  string          `json:"asset"`
	Free   decimal.Decimal `json:"free"`
	Locked decimal.Decimal `json:"locked"`
	Total  decimal.Decimal `json:"total"`
}

// NewBalance builds a Balance with Total = Free + Locked.
func NewBalance(asset string, free, locked decimal.Decimal) Balance {
	return Balance{
		Asset:  asset,
		Free:   free,
		Locked: locked,
		Total:  free.Add(locked),
	}
}

// IsEmpty reports whether both the free and locked amounts are zero.
// Empty balances are excluded from account snapshots.
func (b Balance) IsEmpty() bool {
	return b.Free.IsZero() && b.Locked.IsZero()
}
