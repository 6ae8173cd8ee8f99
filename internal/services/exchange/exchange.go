// Package exchange resolves platform-specific price and balance
// sources for an API connection.
package exchange

import (
	"context"
	"fmt"

	binance "github.com/adshao/go-binance/v2"
	bybit "github.com/hirokisan/bybit/v2"
	"github.com/shopspring/decimal"

	"triscan/internal/clients"
	"triscan/internal/domain"
	"triscan/internal/services/pricer"
	"triscan/internal/services/wallet"
	"triscan/pkg/retrier"
)

// Provider bundles the price and balance sources bound to one
// exchange connection.
type Provider interface {
	Pricer() pricer.Pricer
	Wallet() wallet.Wallet
}

// Factory builds a Provider for a connection. Scan and balance paths
// depend on this type so tests can substitute fake exchanges.
type Factory func(conn domain.APIConnection) (Provider, error)

// New builds a Provider from the connection's platform and
// credentials. It is the single point of dispatch to
// platform-specific implementations.
func New(conn domain.APIConnection) (Provider, error) {
	switch conn.Platform {
	case domain.PlatformBinance:
		return &binanceProvider{
			client: clients.NewBinanceClient(conn.APIKey, conn.APISecret, conn.IsTestnet),
		}, nil
	case domain.PlatformBybit:
		return &bybitProvider{
			client: clients.NewBybitClient(conn.APIKey, conn.APISecret, conn.IsTestnet),
		}, nil
	case domain.PlatformHyperliquid:
		client, err := clients.NewHyperliquidClient(conn.APISecret, conn.IsTestnet)
		if err != nil {
			return nil, fmt.Errorf("failed to create hyperliquid client: %w", err)
		}
		return &hyperliquidProvider{client: client}, nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", conn.Platform)
	}
}

type binanceProvider struct {
	client *binance.Client
}

func (p *binanceProvider) Pricer() pricer.Pricer {
	return withRetries(pricer.NewBinancePricer(p.client))
}

func (p *binanceProvider) Wallet() wallet.Wallet {
	return wallet.NewBinanceWallet(p.client)
}

type bybitProvider struct {
	client *bybit.Client
}

func (p *bybitProvider) Pricer() pricer.Pricer {
	return withRetries(pricer.NewBybitPricer(p.client))
}

func (p *bybitProvider) Wallet() wallet.Wallet {
	return wallet.NewBybitWallet(p.client)
}

type hyperliquidProvider struct {
	client *clients.HyperliquidClient
}

func (p *hyperliquidProvider) Pricer() pricer.Pricer {
	return withRetries(pricer.NewHyperliquidPricer(p.client.Exchange().Info()))
}

func (p *hyperliquidProvider) Wallet() wallet.Wallet {
	return wallet.NewHyperliquidWallet(p.client.Exchange().Info(), p.client.AccountAddress())
}

// retryingPricer retries transient ticker fetch failures so one flaky
// response does not fail a whole scan.
type retryingPricer struct {
	inner  pricer.Pricer
	policy retrier.Policy
}

func withRetries(inner pricer.Pricer) pricer.Pricer {
	return &retryingPricer{inner: inner, policy: retrier.Default()}
}

func (p *retryingPricer) Prices(ctx context.Context) (map[string]decimal.Decimal, error) {
	return retrier.Fetch(ctx, p.policy, p.inner.Prices)
}
