// Package journal implements the opportunity and log sinks on a local
// append-only WAL for running without a database.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"triscan/internal/domain"
)

const (
	segmentLimit = 1000
	maxSegments  = 100

	opportunityKeyPrefix = "opportunity_"
	botLogKeyPrefix      = "botlog_"
)

// Journal persists opportunities and bot logs in one shared WAL.
type Journal struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// Open initializes the WAL in the given directory.
func Open(dir string) (*Journal, error) {
	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "triscan_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init journal WAL")
	}
	return &Journal{wal: wal}, nil
}

// Close flushes and closes the underlying WAL.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.wal.Close()
}

func (j *Journal) append(key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal journal record")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	nextIndex := j.wal.CurrentIndex() + 1
	return j.wal.Write(nextIndex, key, data)
}

// OpportunityJournal adapts the shared journal to store.OpportunityStore.
type OpportunityJournal struct {
	journal *Journal
}

func NewOpportunityJournal(journal *Journal) *OpportunityJournal {
	return &OpportunityJournal{journal: journal}
}

func (s *OpportunityJournal) Insert(ctx context.Context, opp domain.Opportunity) error {
	key := fmt.Sprintf("%s%s", opportunityKeyPrefix, opp.ID)
	return s.journal.append(key, opp)
}

// ListRecent returns up to limit opportunities, newest first.
func (s *OpportunityJournal) ListRecent(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	s.journal.mu.RLock()
	defer s.journal.mu.RUnlock()

	var opps []domain.Opportunity
	current := s.journal.wal.CurrentIndex()
	for idx := current; idx >= 1; idx-- {
		key, payload, err := s.journal.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, opportunityKeyPrefix) {
			continue
		}

		var opp domain.Opportunity
		if err := json.Unmarshal(payload, &opp); err != nil {
			continue
		}
		opps = append(opps, opp)
		if limit > 0 && len(opps) >= limit {
			break
		}
	}
	return opps, nil
}

// BotLogJournal adapts the shared journal to store.LogStore.
type BotLogJournal struct {
	journal *Journal
}

func NewBotLogJournal(journal *Journal) *BotLogJournal {
	return &BotLogJournal{journal: journal}
}

func (s *BotLogJournal) Insert(ctx context.Context, entry domain.BotLog) error {
	key := fmt.Sprintf("%s%s", botLogKeyPrefix, entry.ID)
	return s.journal.append(key, entry)
}

// ListByBot returns up to limit entries for one bot, newest first.
func (s *BotLogJournal) ListByBot(ctx context.Context, botConfigID string, limit int) ([]domain.BotLog, error) {
	s.journal.mu.RLock()
	defer s.journal.mu.RUnlock()

	var entries []domain.BotLog
	current := s.journal.wal.CurrentIndex()
	for idx := current; idx >= 1; idx-- {
		key, payload, err := s.journal.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, botLogKeyPrefix) {
			continue
		}

		var entry domain.BotLog
		if err := json.Unmarshal(payload, &entry); err != nil {
			continue
		}
		if entry.BotConfigID != botConfigID {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	return entries, nil
}
