// Package pricer fetches point-in-time price snapshots from exchanges.
package pricer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Pricer supplies one price snapshot: a mapping of trading-pair symbol
// to its current quoted price. The snapshot is valid for the duration
// of one scan and is not required to be internally consistent.
type Pricer interface {
	Prices(ctx context.Context) (map[string]decimal.Decimal, error)
}
