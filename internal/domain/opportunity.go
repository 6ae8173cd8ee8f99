package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpportunityStatusActive is the initial status of every detected
// opportunity. Lifecycle beyond creation is an external concern.
const OpportunityStatusActive = "active"

// Opportunity is an immutable record of one detected triangular
// arbitrage cycle.
type Opportunity struct {
	ID            string          `json:"id"`
	CurrencyA     string          `json:"currency_a"`
	CurrencyB     string          `json:"currency_b"`
	CurrencyC     string          `json:"currency_c"`
	RateAB        decimal.Decimal `json:"rate_ab"`
	RateBC        decimal.Decimal `json:"rate_bc"`
	RateCA        decimal.Decimal `json:"rate_ca"`
	ProfitPercent decimal.Decimal `json:"profit_percent"`
	Status        string          `json:"status"`
	OwnerID       string          `json:"owner_id"`
	CreatedAt     time.Time       `json:"created_at"`
}
