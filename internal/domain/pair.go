// Package domain defines core data structures shared across the scanner.
package domain

import "fmt"

// Pair is a currency trading pair.
type Pair struct {
	// Base currency symbol.
	Base string
	// Quote currency symbol.
	Quote string
}

// String returns the string representation.
func (p Pair) String() string {
	return fmt.Sprintf("%s_%s", p.Base, p.Quote)
}

// Symbol returns the concatenated exchange symbol, e.g. "BTCUSDT".
// This matches the external price feed's key convention: base followed
// by quote with no separator.
func (p Pair) Symbol() string {
	return p.Base + p.Quote
}
