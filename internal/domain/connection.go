package domain

import "time"

// Supported exchange platforms.
const (
	PlatformBinance     = "binance"
	PlatformBybit       = "bybit"
	PlatformHyperliquid = "hyperliquid"
)

// APIConnection holds per-owner exchange credentials. When an owner
// has several active connections the most recently created one wins.
type APIConnection struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Platform  string    `json:"platform"`
	Label     string    `json:"label"`
	APIKey    string    `json:"-"`
	APISecret string    `json:"-"`
	IsTestnet bool      `json:"is_testnet"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
