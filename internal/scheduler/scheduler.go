// Package scheduler runs recurring opportunity scans for all active
// bots.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"triscan/internal/domain"
	"triscan/internal/services/scanner"
	"triscan/internal/store"
)

// DefaultConcurrency bounds how many bots are scanned at once per
// invocation. Scans issue full-ticker requests, so a small limit keeps
// a shared exchange connection clear of rate limiting.
const DefaultConcurrency = 4

type botScanner interface {
	Scan(ctx context.Context, bot domain.BotConfig) (scanner.ScanResult, error)
}

// Scheduler fans one scan task out per active bot on a recurring
// cadence. Failures are isolated per bot: a failing scan is converted
// into an error log entry and never prevents other bots from running.
type Scheduler struct {
	bots        store.BotStore
	logs        store.LogStore
	scanner     botScanner
	logger      *zap.Logger
	interval    time.Duration
	concurrency int
}

func New(bots store.BotStore, logs store.LogStore, sc botScanner, logger *zap.Logger, interval time.Duration, concurrency int) *Scheduler {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Scheduler{
		bots:        bots,
		logs:        logs,
		scanner:     sc,
		logger:      logger,
		interval:    interval,
		concurrency: concurrency,
	}
}

// Run invokes RunOnce on the configured interval until ctx is done.
// Invocation-level failures are logged and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", zap.Duration("interval", s.interval), zap.Int("concurrency", s.concurrency))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error("scheduled invocation failed", zap.Error(err))
			}
		}
	}
}

// RunOnce executes one fresh, independent scan invocation over every
// active bot. It returns an error only for invocation-level failures;
// per-bot errors become bot log entries.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	bots, err := s.bots.FindActive(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list active bots")
	}
	if len(bots) == 0 {
		return nil
	}

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

	for _, bot := range bots {
		g.Go(func() error {
			s.scanBot(ctx, bot)
			return nil
		})
	}

	// goroutines never return errors; per-bot failures are isolated
	return g.Wait()
}

// scanBot runs one scan and writes exactly one bot log entry: a scan
// entry on success or an error entry on any failure, including a
// missing connection.
func (s *Scheduler) scanBot(ctx context.Context, bot domain.BotConfig) {
	result, err := s.scanner.Scan(ctx, bot)

	entry := domain.BotLog{
		ID:          uuid.NewString(),
		BotConfigID: bot.ID,
		OwnerID:     bot.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	if err != nil {
		entry.Type = domain.LogTypeError
		entry.Message = fmt.Sprintf("Scheduler error: %s", err)
		s.logger.Warn("bot scan failed", zap.String("bot", bot.ID), zap.Error(err))
	} else {
		entry.Type = domain.LogTypeScan
		entry.Message = fmt.Sprintf("Scheduled scan completed. Found %d opportunities.", result.Count)
	}

	if logErr := s.logs.Insert(ctx, entry); logErr != nil {
		s.logger.Error("failed to write bot log entry",
			zap.String("bot", bot.ID),
			zap.Error(logErr))
	}
}
