package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"triscan/internal/domain"
)

// OpportunityStore implements store.OpportunityStore.
type OpportunityStore struct {
	pool *pgxpool.Pool
}

func NewOpportunityStore(client *Client) *OpportunityStore {
	return &OpportunityStore{pool: client.Pool()}
}

func (s *OpportunityStore) Insert(ctx context.Context, opp domain.Opportunity) error {
	const query = `
		INSERT INTO opportunities (
			id, currency_a, currency_b, currency_c,
			rate_ab, rate_bc, rate_ca,
			profit_percent, status, owner_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.pool.Exec(ctx, query,
		opp.ID, opp.CurrencyA, opp.CurrencyB, opp.CurrencyC,
		opp.RateAB, opp.RateBC, opp.RateCA,
		opp.ProfitPercent, opp.Status, opp.OwnerID, opp.CreatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to insert opportunity %s", opp.ID)
	}
	return nil
}

func (s *OpportunityStore) ListRecent(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	query := `
		SELECT id, currency_a, currency_b, currency_c,
			rate_ab, rate_bc, rate_ca,
			profit_percent, status, owner_id, created_at
		FROM opportunities
		ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list opportunities")
	}
	defer rows.Close()

	var opps []domain.Opportunity
	for rows.Next() {
		var opp domain.Opportunity
		if err := rows.Scan(
			&opp.ID, &opp.CurrencyA, &opp.CurrencyB, &opp.CurrencyC,
			&opp.RateAB, &opp.RateBC, &opp.RateCA,
			&opp.ProfitPercent, &opp.Status, &opp.OwnerID, &opp.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan opportunity")
		}
		opps = append(opps, opp)
	}
	return opps, rows.Err()
}
