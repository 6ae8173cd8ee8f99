// Package store defines the persistence interfaces consumed by the
// scanner and scheduler. Backends live in subpackages.
package store

import (
	"context"

	"triscan/internal/domain"
)

// BotStore reads bot configurations.
type BotStore interface {
	// FindActive returns every bot flagged eligible for scheduled
	// scanning.
	FindActive(ctx context.Context) ([]domain.BotConfig, error)
	// Get returns one bot config or domain.ErrNotFound.
	Get(ctx context.Context, id string) (domain.BotConfig, error)
}

// ConnectionStore reads API connections.
type ConnectionStore interface {
	// FindActiveByOwner returns the owner's active connections, most
	// recently created first.
	FindActiveByOwner(ctx context.Context, ownerID string) ([]domain.APIConnection, error)
	// Get returns one connection or domain.ErrNotFound.
	Get(ctx context.Context, id string) (domain.APIConnection, error)
}

// OpportunityStore is the durable sink for detected opportunities.
type OpportunityStore interface {
	Insert(ctx context.Context, opp domain.Opportunity) error
	ListRecent(ctx context.Context, limit int) ([]domain.Opportunity, error)
}

// LogStore is the durable sink for scheduled scan outcome entries.
type LogStore interface {
	Insert(ctx context.Context, entry domain.BotLog) error
	ListByBot(ctx context.Context, botConfigID string, limit int) ([]domain.BotLog, error)
}
