// Package static provides read-only bot and connection stores seeded
// from the configuration file, for running without a database.
package static

import (
	"context"
	"sort"

	"triscan/internal/domain"
)

// BotStore serves bot configs from a fixed list.
type BotStore struct {
	bots []domain.BotConfig
}

func NewBotStore(bots []domain.BotConfig) *BotStore {
	return &BotStore{bots: bots}
}

func (s *BotStore) FindActive(ctx context.Context) ([]domain.BotConfig, error) {
	var out []domain.BotConfig
	for _, b := range s.bots {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *BotStore) Get(ctx context.Context, id string) (domain.BotConfig, error) {
	for _, b := range s.bots {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.BotConfig{}, domain.ErrNotFound
}

// ConnectionStore serves API connections from a fixed list.
type ConnectionStore struct {
	conns []domain.APIConnection
}

func NewConnectionStore(conns []domain.APIConnection) *ConnectionStore {
	return &ConnectionStore{conns: conns}
}

// FindActiveByOwner mirrors the database ordering: most recently
// created first.
func (s *ConnectionStore) FindActiveByOwner(ctx context.Context, ownerID string) ([]domain.APIConnection, error) {
	var out []domain.APIConnection
	for _, c := range s.conns {
		if c.OwnerID == ownerID && c.IsActive {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *ConnectionStore) Get(ctx context.Context, id string) (domain.APIConnection, error) {
	for _, c := range s.conns {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.APIConnection{}, domain.ErrNotFound
}
