package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrencies is the fallback currency set for bots with no
// enabled currencies configured.
func DefaultCurrencies() []string {
	return []string{"BTC", "ETH", "USDT"}
}

// BotConfig describes one scanning bot. Configs are created by an
// external management surface and are read-only here.
type BotConfig struct {
	ID                string          `json:"id"`
	OwnerID           string          `json:"owner_id"`
	Name              string          `json:"name"`
	EnabledCurrencies []string        `json:"enabled_currencies"`
	MinProfitPercent  decimal.Decimal `json:"min_profit_percent"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Currencies returns the bot's enabled currency list, falling back to
// the default set when none are configured.
func (b BotConfig) Currencies() []string {
	if len(b.EnabledCurrencies) == 0 {
		return DefaultCurrencies()
	}
	return b.EnabledCurrencies
}
