package scanner

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"triscan/internal/domain"
	"triscan/internal/services/exchange"
	"triscan/internal/services/pricer"
	"triscan/internal/services/wallet"
)

type fakeBotStore struct {
	bots map[string]domain.BotConfig
}

func (f *fakeBotStore) FindActive(ctx context.Context) ([]domain.BotConfig, error) {
	var out []domain.BotConfig
	for _, b := range f.bots {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBotStore) Get(ctx context.Context, id string) (domain.BotConfig, error) {
	b, ok := f.bots[id]
	if !ok {
		return domain.BotConfig{}, domain.ErrNotFound
	}
	return b, nil
}

type fakeConnectionStore struct {
	conns map[string][]domain.APIConnection
	byID  map[string]domain.APIConnection
	err   error
}

func (f *fakeConnectionStore) FindActiveByOwner(ctx context.Context, ownerID string) ([]domain.APIConnection, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.conns[ownerID], nil
}

func (f *fakeConnectionStore) Get(ctx context.Context, id string) (domain.APIConnection, error) {
	c, ok := f.byID[id]
	if !ok {
		return domain.APIConnection{}, domain.ErrNotFound
	}
	return c, nil
}

type fakeOpportunityStore struct {
	inserted []domain.Opportunity
	err      error
}

func (f *fakeOpportunityStore) Insert(ctx context.Context, opp domain.Opportunity) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, opp)
	return nil
}

func (f *fakeOpportunityStore) ListRecent(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	return f.inserted, nil
}

type fakePricer struct {
	prices map[string]decimal.Decimal
	err    error
}

func (f *fakePricer) Prices(ctx context.Context) (map[string]decimal.Decimal, error) {
	return f.prices, f.err
}

type fakeWallet struct {
	balances []domain.Balance
	err      error
}

func (f *fakeWallet) Balances(ctx context.Context) ([]domain.Balance, error) {
	return f.balances, f.err
}

type fakeProvider struct {
	pricer *fakePricer
	wallet *fakeWallet
}

func (f *fakeProvider) Pricer() pricer.Pricer { return f.pricer }
func (f *fakeProvider) Wallet() wallet.Wallet { return f.wallet }

func fixedFactory(p *fakeProvider) exchange.Factory {
	return func(conn domain.APIConnection) (exchange.Provider, error) {
		return p, nil
	}
}

func snapshot(pairs map[string]string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(pairs))
	for symbol, price := range pairs {
		out[symbol] = decimal.RequireFromString(price)
	}
	return out
}

func activeConn(owner string) domain.APIConnection {
	return domain.APIConnection{
		ID:       "conn-" + owner,
		OwnerID:  owner,
		Platform: domain.PlatformBinance,
		IsActive: true,
	}
}

func TestScanFindsOpportunities(t *testing.T) {
	provider := &fakeProvider{pricer: &fakePricer{prices: snapshot(map[string]string{
		"AB": "1.0",
		"BC": "1.0",
		"CA": "1.02",
	})}}
	opps := &fakeOpportunityStore{}
	s := New(
		&fakeBotStore{},
		&fakeConnectionStore{conns: map[string][]domain.APIConnection{"user-1": {activeConn("user-1")}}},
		opps,
		fixedFactory(provider),
		zap.NewNop(),
	)

	bot := domain.BotConfig{
		ID:                "bot-1",
		OwnerID:           "user-1",
		EnabledCurrencies: []string{"A", "B", "C"},
		MinProfitPercent:  decimal.NewFromInt(1),
	}

	result, err := s.Scan(context.Background(), bot)
	require.NoError(t, err)

	// the ring A->B->C->A qualifies once per rotation; the reverse
	// direction has no quoted legs
	require.Equal(t, 3, result.Count)
	require.Len(t, opps.inserted, 3)

	var starts []string
	for _, got := range opps.inserted {
		starts = append(starts, got.CurrencyA)
		assert.Equal(t, "user-1", got.OwnerID)
		assert.True(t, got.ProfitPercent.Equal(decimal.RequireFromString("2")),
			"profit = %s", got.ProfitPercent)
	}
	assert.ElementsMatch(t, []string{"A", "B", "C"}, starts)
}

func TestScanNoConnection(t *testing.T) {
	s := New(
		&fakeBotStore{},
		&fakeConnectionStore{},
		&fakeOpportunityStore{},
		fixedFactory(&fakeProvider{}),
		zap.NewNop(),
	)

	_, err := s.Scan(context.Background(), domain.BotConfig{OwnerID: "user-1"})
	require.ErrorIs(t, err, domain.ErrNoActiveConnection)
}

func TestScanFetchFailure(t *testing.T) {
	provider := &fakeProvider{pricer: &fakePricer{err: errors.New("binance unreachable")}}
	opps := &fakeOpportunityStore{}
	s := New(
		&fakeBotStore{},
		&fakeConnectionStore{conns: map[string][]domain.APIConnection{"user-1": {activeConn("user-1")}}},
		opps,
		fixedFactory(provider),
		zap.NewNop(),
	)

	_, err := s.Scan(context.Background(), domain.BotConfig{OwnerID: "user-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch price snapshot")
	assert.Empty(t, opps.inserted)
}

func TestScanBotManualPath(t *testing.T) {
	provider := &fakeProvider{pricer: &fakePricer{prices: snapshot(map[string]string{
		"AB": "1.0",
		"BC": "1.0",
		"CA": "1.05",
	})}}
	opps := &fakeOpportunityStore{}
	bots := &fakeBotStore{bots: map[string]domain.BotConfig{
		"bot-1": {
			ID:                "bot-1",
			OwnerID:           "someone-else",
			EnabledCurrencies: []string{"A", "B", "C"},
			MinProfitPercent:  decimal.NewFromInt(1),
		},
	}}
	s := New(
		bots,
		&fakeConnectionStore{conns: map[string][]domain.APIConnection{"user-1": {activeConn("user-1")}}},
		opps,
		fixedFactory(provider),
		zap.NewNop(),
	)

	resp := s.ScanBot(context.Background(), "user-1", "bot-1")
	require.True(t, resp.Success)
	assert.Equal(t, 3, resp.Count)
	require.Len(t, resp.Opportunities, 3)
	// recorded under the caller, not the bot's owner
	assert.Equal(t, "user-1", resp.Opportunities[0].OwnerID)
}

func TestScanBotMissingConfig(t *testing.T) {
	s := New(
		&fakeBotStore{},
		&fakeConnectionStore{},
		&fakeOpportunityStore{},
		fixedFactory(&fakeProvider{}),
		zap.NewNop(),
	)

	resp := s.ScanBot(context.Background(), "user-1", "missing")
	assert.False(t, resp.Success)
	assert.Equal(t, "Bot config not found", resp.Error)
}

func TestScanBotNoActiveConnection(t *testing.T) {
	bots := &fakeBotStore{bots: map[string]domain.BotConfig{
		"bot-1": {ID: "bot-1", OwnerID: "user-1"},
	}}
	opps := &fakeOpportunityStore{}
	s := New(bots, &fakeConnectionStore{}, opps, fixedFactory(&fakeProvider{}), zap.NewNop())

	resp := s.ScanBot(context.Background(), "user-1", "bot-1")
	assert.False(t, resp.Success)
	assert.Equal(t, "No active API connection", resp.Error)
	assert.Empty(t, opps.inserted)
}

func TestGetBalanceFiltersAndSnapshots(t *testing.T) {
	provider := &fakeProvider{
		pricer: &fakePricer{prices: snapshot(map[string]string{"BTCUSDT": "60000"})},
		wallet: &fakeWallet{balances: []domain.Balance{
			domain.NewBalance("ETH", decimal.RequireFromString("0.5"), decimal.Zero),
		}},
	}
	s := New(
		&fakeBotStore{},
		&fakeConnectionStore{conns: map[string][]domain.APIConnection{"user-1": {activeConn("user-1")}}},
		&fakeOpportunityStore{},
		fixedFactory(provider),
		zap.NewNop(),
	)

	resp := s.GetBalance(context.Background(), "user-1")
	require.True(t, resp.Success)
	require.Len(t, resp.Balances, 1)
	assert.Equal(t, "ETH", resp.Balances[0].Asset)
	assert.True(t, resp.Balances[0].Total.Equal(decimal.RequireFromString("0.5")))
	assert.Contains(t, resp.Prices, "BTCUSDT")
}

func TestGetBalanceNoConnection(t *testing.T) {
	s := New(&fakeBotStore{}, &fakeConnectionStore{}, &fakeOpportunityStore{}, fixedFactory(&fakeProvider{}), zap.NewNop())

	resp := s.GetBalance(context.Background(), "user-1")
	assert.False(t, resp.Success)
	assert.Equal(t, "No active API connection found", resp.Error)
}

func TestTestConnection(t *testing.T) {
	conns := &fakeConnectionStore{byID: map[string]domain.APIConnection{
		"conn-1": activeConn("user-1"),
	}}

	t.Run("success", func(t *testing.T) {
		provider := &fakeProvider{wallet: &fakeWallet{}}
		s := New(&fakeBotStore{}, conns, &fakeOpportunityStore{}, fixedFactory(provider), zap.NewNop())

		resp := s.TestConnection(context.Background(), "conn-1")
		require.True(t, resp.Success)
		assert.Equal(t, "Connection successful", resp.Message)
	})

	t.Run("not found", func(t *testing.T) {
		s := New(&fakeBotStore{}, conns, &fakeOpportunityStore{}, fixedFactory(&fakeProvider{}), zap.NewNop())

		resp := s.TestConnection(context.Background(), "missing")
		assert.False(t, resp.Success)
		assert.Equal(t, "Connection not found", resp.Error)
	})

	t.Run("bad credentials", func(t *testing.T) {
		provider := &fakeProvider{wallet: &fakeWallet{err: errors.New("invalid API key")}}
		s := New(&fakeBotStore{}, conns, &fakeOpportunityStore{}, fixedFactory(provider), zap.NewNop())

		resp := s.TestConnection(context.Background(), "conn-1")
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "invalid API key")
	})
}
