package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"triscan/internal/domain"
)

// ConnectionStore implements store.ConnectionStore.
type ConnectionStore struct {
	pool *pgxpool.Pool
}

func NewConnectionStore(client *Client) *ConnectionStore {
	return &ConnectionStore{pool: client.Pool()}
}

const connSelectCols = `id, owner_id, platform, label, api_key, api_secret, is_testnet, is_active, created_at`

// FindActiveByOwner orders by created_at DESC then id so the
// most-recently-created connection wins deterministically when an
// owner has several active ones.
func (s *ConnectionStore) FindActiveByOwner(ctx context.Context, ownerID string) ([]domain.APIConnection, error) {
	query := `SELECT ` + connSelectCols + `
		FROM api_connections
		WHERE owner_id = $1 AND is_active
		ORDER BY created_at DESC, id`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query active connections")
	}
	defer rows.Close()

	var conns []domain.APIConnection
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, conn)
	}
	return conns, rows.Err()
}

func (s *ConnectionStore) Get(ctx context.Context, id string) (domain.APIConnection, error) {
	query := `SELECT ` + connSelectCols + ` FROM api_connections WHERE id = $1`

	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return domain.APIConnection{}, errors.Wrap(err, "failed to query connection")
	}
	defer rows.Close()

	if !rows.Next() {
		return domain.APIConnection{}, domain.ErrNotFound
	}
	return scanConnection(rows)
}

func scanConnection(rows pgx.Rows) (domain.APIConnection, error) {
	var conn domain.APIConnection
	if err := rows.Scan(
		&conn.ID, &conn.OwnerID, &conn.Platform, &conn.Label,
		&conn.APIKey, &conn.APISecret, &conn.IsTestnet, &conn.IsActive, &conn.CreatedAt,
	); err != nil {
		return domain.APIConnection{}, errors.Wrap(err, "failed to scan connection")
	}
	return conn, nil
}
