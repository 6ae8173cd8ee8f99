package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"triscan/internal/domain"
)

// BotStore implements store.BotStore.
type BotStore struct {
	pool *pgxpool.Pool
}

func NewBotStore(client *Client) *BotStore {
	return &BotStore{pool: client.Pool()}
}

const botSelectCols = `id, owner_id, name, enabled_currencies, min_profit_percent, is_active, created_at`

func (s *BotStore) FindActive(ctx context.Context) ([]domain.BotConfig, error) {
	query := `SELECT ` + botSelectCols + ` FROM bot_configs WHERE is_active ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query active bots")
	}
	defer rows.Close()

	var bots []domain.BotConfig
	for rows.Next() {
		bot, err := scanBot(rows)
		if err != nil {
			return nil, err
		}
		bots = append(bots, bot)
	}
	return bots, rows.Err()
}

func (s *BotStore) Get(ctx context.Context, id string) (domain.BotConfig, error) {
	query := `SELECT ` + botSelectCols + ` FROM bot_configs WHERE id = $1`

	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return domain.BotConfig{}, errors.Wrap(err, "failed to query bot config")
	}
	defer rows.Close()

	if !rows.Next() {
		return domain.BotConfig{}, domain.ErrNotFound
	}
	return scanBot(rows)
}

func scanBot(rows pgx.Rows) (domain.BotConfig, error) {
	var bot domain.BotConfig
	if err := rows.Scan(
		&bot.ID, &bot.OwnerID, &bot.Name, &bot.EnabledCurrencies,
		&bot.MinProfitPercent, &bot.IsActive, &bot.CreatedAt,
	); err != nil {
		return domain.BotConfig{}, errors.Wrap(err, "failed to scan bot config")
	}
	return bot, nil
}
