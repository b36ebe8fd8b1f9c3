package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/codesye/studentcode-service/internal/analysis"
	"github.com/codesye/studentcode-service/internal/config"
	"github.com/codesye/studentcode-service/internal/llm"
	"github.com/codesye/studentcode-service/internal/notify"
	"github.com/codesye/studentcode-service/internal/repository"
	"github.com/codesye/studentcode-service/internal/repository/memory"
	"github.com/codesye/studentcode-service/internal/repository/postgres"
	redisrepo "github.com/codesye/studentcode-service/internal/repository/redis"
	"github.com/codesye/studentcode-service/internal/service"
	myhttp "github.com/codesye/studentcode-service/internal/transport/http"
	"github.com/codesye/studentcode-service/pkg/logger/sl"
	"github.com/codesye/studentcode-service/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting studentcode-service",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Driver),
	)

	errChan := make(chan error, 1)

	reviews, users, sessions, cleanup, err := buildStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to init storage: %v", err)
	}
	defer cleanup()

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb = redisrepo.NewClient(cfg.Redis)
		defer rdb.Close()

		sessions = redisrepo.NewSessionStore(rdb)
	}

	hub := notify.NewHub(log)

	var notifier notify.Notifier = hub
	if rdb != nil {
		bridge := notify.NewBridge(hub, rdb, log)
		notifier = bridge

		go func() {
			if err := bridge.Run(ctx); err != nil {
				log.Error("comment bridge stopped", sl.Err(err))
			}
		}()
	}

	analyzer := analysis.NewAnalyzer(llm.NewClient(cfg.OpenAI), log)

	authService := service.NewAuthService(log, users, sessions)
	reviewService := service.NewReviewService(log, reviews, users, analyzer, notifier)
	progressService := service.NewProgressService(log, reviews)

	srv := myhttp.NewServer(log, authService, reviewService, progressService, hub)
	httpServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Routes(),
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %v", err)
	}

	return nil
}

// buildStorage wires the configured driver. The memory driver seeds the
// demo accounts and sample reviews; postgres upserts the demo accounts so
// the login shortcuts work on a fresh database.
func buildStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (
	repository.ReviewRepository,
	repository.UserRepository,
	repository.SessionStore,
	func(),
	error,
) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := postgres.NewDB(cfg.Postgres, log)
		if err != nil {
			return nil, nil, nil, nil, err
		}

		users := postgres.NewUserRepository(db.DB(), log)
		for _, u := range memory.SampleUsers() {
			if err := users.Upsert(ctx, u); err != nil {
				db.DB().Close()
				return nil, nil, nil, nil, fmt.Errorf("failed to seed user '%s': %w", u.ID, err)
			}
		}

		cleanup := func() {
			if err := db.DB().Close(); err != nil {
				log.Error("db close failed", sl.Err(err))
			}
		}

		return postgres.NewReviewRepository(db.DB(), log), users, memory.NewSessionStore(), cleanup, nil

	default:
		reviews := memory.NewReviewStore()
		users := memory.NewUserStore()

		if err := memory.Seed(users, reviews); err != nil {
			return nil, nil, nil, nil, err
		}

		return reviews, users, memory.NewSessionStore(), func() {}, nil
	}
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
