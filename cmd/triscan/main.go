// Command triscan runs the triangular arbitrage opportunity scanner.
// It scans every active bot on a recurring schedule and serves the
// manual scan, balance and connection-test API.
//
// Usage:
//
//	triscan --config config.yaml
//	triscan setup   (interactive configuration wizard)
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"triscan/config"
	"triscan/internal/scheduler"
	"triscan/internal/services/scanner"
	"triscan/internal/setup"
	"triscan/internal/store"
	"triscan/internal/store/journal"
	"triscan/internal/store/postgres"
	"triscan/internal/store/static"
	"triscan/internal/web"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, cleanup, err := buildStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer cleanup()

	sc := scanner.New(stores.bots, stores.connections, stores.opportunities, nil, logger)
	sched := scheduler.New(stores.bots, stores.logs, sc, logger, cfg.ScanInterval, cfg.ScanConcurrency)
	server := web.NewServer(cfg.HTTPAddr, sc, stores.opportunities, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sched.Run(ctx)
	})
	g.Go(func() error {
		if cfg.TLSDomain != "" {
			return server.StartWithAutoTLS(ctx, cfg.TLSDomain, "")
		}
		return server.Start(ctx)
	})

	logger.Info("scanner started",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("storage", cfg.Storage.Backend))

	if err := g.Wait(); err != nil && !isShutdown(err) {
		logger.Fatal("scanner stopped", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func isShutdown(err error) bool {
	return errors.Is(err, context.Canceled)
}

type stores struct {
	bots          store.BotStore
	connections   store.ConnectionStore
	opportunities store.OpportunityStore
	logs          store.LogStore
}

// buildStores wires the configured persistence backend: postgres keeps
// everything in the database, journal serves bots and connections from
// the config file and appends scan output to a local WAL.
func buildStores(ctx context.Context, cfg config.Config) (stores, func(), error) {
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		client, err := postgres.New(ctx, cfg.Storage.DSN)
		if err != nil {
			return stores{}, nil, err
		}
		return stores{
			bots:          postgres.NewBotStore(client),
			connections:   postgres.NewConnectionStore(client),
			opportunities: postgres.NewOpportunityStore(client),
			logs:          postgres.NewBotLogStore(client),
		}, client.Close, nil
	default:
		j, err := journal.Open(cfg.Storage.Dir)
		if err != nil {
			return stores{}, nil, err
		}
		return stores{
			bots:          static.NewBotStore(cfg.Bots),
			connections:   static.NewConnectionStore(cfg.Connections),
			opportunities: journal.NewOpportunityJournal(j),
			logs:          journal.NewBotLogJournal(j),
		}, func() { _ = j.Close() }, nil
	}
}
