// Package scanner runs arbitrage scans for individual bots and backs
// the manual API entry points.
package scanner

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"triscan/internal/domain"
	"triscan/internal/services/cycle"
	"triscan/internal/services/detector"
	"triscan/internal/services/exchange"
	"triscan/internal/store"
)

// Scanner performs one full opportunity scan for one bot: resolve the
// owner's exchange connection, fetch a price snapshot, evaluate every
// enumerated cycle and record the qualifying ones.
type Scanner struct {
	bots          store.BotStore
	connections   store.ConnectionStore
	opportunities store.OpportunityStore
	providers     exchange.Factory
	logger        *zap.Logger
}

// New creates a Scanner. providers defaults to exchange.New when nil.
func New(
	bots store.BotStore,
	connections store.ConnectionStore,
	opportunities store.OpportunityStore,
	providers exchange.Factory,
	logger *zap.Logger,
) *Scanner {
	if providers == nil {
		providers = exchange.New
	}
	return &Scanner{
		bots:          bots,
		connections:   connections,
		opportunities: opportunities,
		providers:     providers,
		logger:        logger,
	}
}

// ScanResult summarizes one completed scan.
type ScanResult struct {
	Count         int
	Opportunities []domain.Opportunity
}

// Scan executes one scan for the given bot. Each qualifying cycle is
// recorded synchronously before the next one is evaluated. Returns
// domain.ErrNoActiveConnection when the owner has no usable
// connection.
func (s *Scanner) Scan(ctx context.Context, bot domain.BotConfig) (ScanResult, error) {
	provider, err := s.resolveProvider(ctx, bot.OwnerID)
	if err != nil {
		return ScanResult{}, err
	}

	prices, err := provider.Pricer().Prices(ctx)
	if err != nil {
		return ScanResult{}, errors.Wrap(err, "failed to fetch price snapshot")
	}

	var result ScanResult
	for _, c := range cycle.Enumerate(bot.Currencies()) {
		opp, ok := detector.Evaluate(prices, c, bot.MinProfitPercent, bot.OwnerID)
		if !ok {
			continue
		}
		if err := s.opportunities.Insert(ctx, opp); err != nil {
			return ScanResult{}, errors.Wrapf(err, "failed to record opportunity for cycle %s", c)
		}
		result.Opportunities = append(result.Opportunities, opp)
		result.Count++
	}

	s.logger.Debug("scan completed",
		zap.String("bot", bot.ID),
		zap.Int("opportunities", result.Count))

	return result, nil
}

// resolveProvider picks the owner's most recently created active
// connection and builds an exchange provider for it.
func (s *Scanner) resolveProvider(ctx context.Context, ownerID string) (exchange.Provider, error) {
	conns, err := s.connections.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list API connections")
	}
	if len(conns) == 0 {
		return nil, domain.ErrNoActiveConnection
	}

	provider, err := s.providers(conns[0])
	if err != nil {
		return nil, errors.Wrap(err, "failed to create exchange client")
	}
	return provider, nil
}

// ScanResponse is the manual scan entry point envelope.
type ScanResponse struct {
	Success       bool                 `json:"success"`
	Count         int                  `json:"count"`
	Opportunities []domain.Opportunity `json:"opportunities,omitempty"`
	Error         string               `json:"error,omitempty"`
}

// ScanBot runs one scan synchronously on behalf of ownerID and returns
// its summary inline. Unlike the scheduled path it writes no bot log
// entry.
func (s *Scanner) ScanBot(ctx context.Context, ownerID, botConfigID string) ScanResponse {
	bot, err := s.bots.Get(ctx, botConfigID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ScanResponse{Error: "Bot config not found"}
		}
		return ScanResponse{Error: err.Error()}
	}

	// The manual path scans with the caller's connection and records
	// opportunities under the caller, regardless of who owns the bot.
	bot.OwnerID = ownerID

	result, err := s.Scan(ctx, bot)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveConnection) {
			return ScanResponse{Error: "No active API connection"}
		}
		return ScanResponse{Error: err.Error()}
	}

	return ScanResponse{
		Success:       true,
		Count:         result.Count,
		Opportunities: result.Opportunities,
	}
}

// BalanceResponse is the balance entry point envelope.
type BalanceResponse struct {
	Success  bool                       `json:"success"`
	Balances []domain.Balance           `json:"balances,omitempty"`
	Prices   map[string]decimal.Decimal `json:"prices,omitempty"`
	Error    string                     `json:"error,omitempty"`
}

// GetBalance returns the owner's non-empty account balances together
// with a full price snapshot.
func (s *Scanner) GetBalance(ctx context.Context, ownerID string) BalanceResponse {
	provider, err := s.resolveProvider(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveConnection) {
			return BalanceResponse{Error: "No active API connection found"}
		}
		return BalanceResponse{Error: err.Error()}
	}

	balances, err := provider.Wallet().Balances(ctx)
	if err != nil {
		return BalanceResponse{Error: err.Error()}
	}
	prices, err := provider.Pricer().Prices(ctx)
	if err != nil {
		return BalanceResponse{Error: err.Error()}
	}

	return BalanceResponse{Success: true, Balances: balances, Prices: prices}
}

// TestResponse is the connection test entry point envelope.
type TestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TestConnection performs one authenticated account call against the
// connection's exchange to confirm the stored credentials are valid.
func (s *Scanner) TestConnection(ctx context.Context, connectionID string) TestResponse {
	conn, err := s.connections.Get(ctx, connectionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return TestResponse{Error: "Connection not found"}
		}
		return TestResponse{Error: err.Error()}
	}

	provider, err := s.providers(conn)
	if err != nil {
		return TestResponse{Error: err.Error()}
	}

	if _, err := provider.Wallet().Balances(ctx); err != nil {
		return TestResponse{Error: err.Error()}
	}

	return TestResponse{Success: true, Message: "Connection successful"}
}
