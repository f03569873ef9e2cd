package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hongminglow/bank-console/internal/alerts"
	"github.com/hongminglow/bank-console/internal/auth"
	"github.com/hongminglow/bank-console/internal/config"
	"github.com/hongminglow/bank-console/internal/gateway"
	"github.com/hongminglow/bank-console/internal/intake"
	"github.com/hongminglow/bank-console/internal/paging"
	"github.com/hongminglow/bank-console/internal/profile"
	"github.com/hongminglow/bank-console/internal/server"
	"github.com/hongminglow/bank-console/internal/session"
	"github.com/hongminglow/bank-console/internal/storage"
	"github.com/hongminglow/bank-console/internal/storage/filestore"
	postgres "github.com/hongminglow/bank-console/internal/storage/postgres"
)

const purgeInterval = 10 * time.Minute

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		logger.Fatal("init session store", zap.Error(err))
	}
	defer closeStore()

	sealer, err := auth.NewSealer(cfg.SessionSecret)
	if err != nil {
		logger.Fatal("init token sealer", zap.Error(err))
	}
	tokens := auth.NewTokenManager(cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionTTL)
	backend := gateway.New(cfg.BackendBaseURL, cfg.BackendTimeout, logger.Named("gateway"))

	deps := server.Deps{
		Backend:  backend,
		Sessions: session.NewManager(backend, store, tokens, sealer, logger.Named("session")),
		Desk:     intake.NewDesk(backend, cfg.CurrencySymbol, logger.Named("intake")),
		Workflow: profile.NewWorkflow(backend, logger.Named("profile")),
		Alerts:   alerts.NewRegistry(cfg.FlashTTL),
		Pages:    paging.NewTracker(),
		Logger:   logger,
	}
	srv := server.New(cfg, deps)

	go purgeSessions(ctx, store, logger)

	go func() {
		logger.Info("bank console listening", zap.String("addr", cfg.HTTPAddress()), zap.String("backend", cfg.BackendBaseURL))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", zap.Error(err))
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openSessionStore uses Postgres when DATABASE_URL is set and a local
// snapshot file otherwise.
func openSessionStore(ctx context.Context, cfg config.Config) (storage.SessionStore, func(), error) {
	if cfg.UsesDatabase() {
		store, err := postgres.NewSessionStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	store, err := filestore.Open(cfg.SessionFile)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

func purgeSessions(ctx context.Context, store storage.SessionStore, logger *zap.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := store.PurgeExpired(ctx, now)
			if err != nil {
				logger.Warn("purge expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("purged expired sessions", zap.Int64("count", n))
			}
		}
	}
}
