// Package clients constructs authenticated exchange API clients.
package clients

import (
	"github.com/adshao/go-binance/v2"
)

const binanceTestnetBaseURL = "https://testnet.binance.vision"

// NewBinanceClient builds a Binance REST client for the given
// credentials, pointed at the spot testnet when testnet is set.
func NewBinanceClient(apiKey, apiSecret string, testnet bool) *binance.Client {
	client := binance.NewClient(apiKey, apiSecret)
	if testnet {
		client.BaseURL = binanceTestnetBaseURL
	}
	return client
}
