package clients

import (
	"github.com/hirokisan/bybit/v2"
)

const bybitTestnetBaseURL = "https://api-testnet.bybit.com"

// NewBybitClient builds a Bybit V5 client for the given credentials,
// pointed at the testnet when testnet is set.
func NewBybitClient(apiKey, apiSecret string, testnet bool) *bybit.Client {
	client := bybit.NewClient().WithAuth(apiKey, apiSecret)
	if testnet {
		client = client.WithBaseURL(bybitTestnetBaseURL)
	}
	return client
}
