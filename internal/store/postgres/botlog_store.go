package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"triscan/internal/domain"
)

// BotLogStore implements store.LogStore.
type BotLogStore struct {
	pool *pgxpool.Pool
}

func NewBotLogStore(client *Client) *BotLogStore {
	return &BotLogStore{pool: client.Pool()}
}

func (s *BotLogStore) Insert(ctx context.Context, entry domain.BotLog) error {
	const query = `
		INSERT INTO bot_logs (id, bot_config_id, owner_id, log_type, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.pool.Exec(ctx, query,
		entry.ID, entry.BotConfigID, entry.OwnerID, string(entry.Type), entry.Message, entry.CreatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to insert bot log %s", entry.ID)
	}
	return nil
}

func (s *BotLogStore) ListByBot(ctx context.Context, botConfigID string, limit int) ([]domain.BotLog, error) {
	query := `
		SELECT id, bot_config_id, owner_id, log_type, message, created_at
		FROM bot_logs
		WHERE bot_config_id = $1
		ORDER BY created_at DESC`
	args := []any{botConfigID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bot logs")
	}
	defer rows.Close()

	var entries []domain.BotLog
	for rows.Next() {
		var entry domain.BotLog
		var logType string
		if err := rows.Scan(
			&entry.ID, &entry.BotConfigID, &entry.OwnerID, &logType, &entry.Message, &entry.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan bot log")
		}
		entry.Type = domain.LogType(logType)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
