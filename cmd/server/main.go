package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"warden/internal/audit"
	"warden/internal/audit/kafka"
	"warden/internal/infraction"
	infractionhandler "warden/internal/infraction/handler"
	infractionservice "warden/internal/infraction/service"
	infractionpg "warden/internal/infraction/store/postgres"
	"warden/internal/jam"
	jamhandler "warden/internal/jam/handler"
	jamservice "warden/internal/jam/service"
	jampg "warden/internal/jam/store/postgres"
	jamredis "warden/internal/jam/store/redis"
	"warden/internal/jwtauth"
	"warden/internal/platform/config"
	"warden/internal/platform/httpserver"
	"warden/internal/platform/logger"
	"warden/internal/platform/metrics"
	platformredis "warden/internal/platform/redis"
	httptransport "warden/internal/transport/http"
	"warden/internal/user"
	userpg "warden/internal/user/store/postgres"
)

const (
	auditBuffer     = 256
	shutdownTimeout = 10 * time.Second
)

// main wires the backing stores, the audit pipeline and the HTTP server.
// Every backing service is optional: without a URL the in-memory
// implementation is used, so a bare `go run ./cmd/server` works.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	var (
		infractionStore infraction.Store = infraction.NewInMemoryStore()
		userStore       user.Store       = user.NewInMemoryStore()
		jamStore        jam.Store        = jam.NewInMemoryStore()
		banStore        jam.BanStore     = jam.NewInMemoryBanStore()
		db              *sql.DB
	)

	if cfg.PostgresURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}

		ipg, upg, jpg := infractionpg.New(db), userpg.New(db), jampg.New(db)
		for _, ensure := range []func(context.Context) error{
			ipg.EnsureSchema, upg.EnsureSchema, jpg.EnsureSchema,
		} {
			if err := ensure(ctx); err != nil {
				return err
			}
		}
		infractionStore, userStore, jamStore = ipg, upg, jpg
		log.Info("using postgres stores")
	}

	redisClient, err := platformredis.New(cfg.Redis())
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		banStore = jamredis.NewBanStore(redisClient.Client)
		log.Info("using redis ban store")
	}

	var sink audit.Sink = audit.NewInMemorySink()
	var kafkaSink *kafka.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err = kafka.New(ctx, cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			return err
		}
		sink = kafkaSink
		log.Info("using kafka audit sink", "topic", cfg.KafkaTopic)
	}

	publisher := audit.NewAsyncPublisher(auditBuffer, log)
	worker := audit.NewWorker(sink, publisher.Inbox(), log)

	tokens := jwtauth.NewService(cfg.JWTSigningKey)
	infractions := infractionservice.New(infractionStore, user.NewExpander(userStore), m, log)
	jams := jamservice.New(jamStore, banStore, publisher, m, log)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:         log,
		Metrics:        m,
		Infractions:    infractionhandler.New(infractions, log),
		Jams:           jamhandler.New(jams, log),
		TokenValidator: tokens,
		Health: func(ctx context.Context) error {
			if db != nil {
				if err := db.PingContext(ctx); err != nil {
					return err
				}
			}
			if redisClient != nil {
				return redisClient.Health(ctx)
			}
			return nil
		},
	})
	srv := httpserver.New(cfg.Addr, router)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		err := worker.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		log.Info("starting warden", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = group.Wait()

	if kafkaSink != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if closeErr := kafkaSink.Close(closeCtx); closeErr != nil {
			log.Error("failed to close kafka sink", "error", closeErr.Error())
		}
	}
	return err
}
