package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/excavacionesmoreno/quote-backend/api/routes"
	"github.com/excavacionesmoreno/quote-backend/internal/cart"
	"github.com/excavacionesmoreno/quote-backend/internal/catalog"
	"github.com/excavacionesmoreno/quote-backend/internal/quote"
	"github.com/excavacionesmoreno/quote-backend/internal/sessions"
	"github.com/excavacionesmoreno/quote-backend/pkg/config"
	"github.com/excavacionesmoreno/quote-backend/pkg/db"
	"github.com/excavacionesmoreno/quote-backend/pkg/logger"
	"github.com/excavacionesmoreno/quote-backend/pkg/metrics"
	"github.com/excavacionesmoreno/quote-backend/pkg/migrate"
	"github.com/excavacionesmoreno/quote-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})

	err = run(ctx, cfg, logg)
	stop()
	if err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped gracefully")
}

// run wires the service and blocks until ctx is canceled or a component fails.
// Every resource opened here is closed before it returns.
func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	var dbPinger db.Pinger
	cat := catalog.Default()
	if cfg.Catalog.UsesDB() {
		dbClient, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return fmt.Errorf("bootstrap database: %w", err)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			return fmt.Errorf("dev migrations: %w", err)
		}

		cat, err = catalog.NewRepository(dbClient.DB()).Load(ctx)
		if err != nil {
			return fmt.Errorf("load catalog from database: %w", err)
		}
		dbPinger = dbClient
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"catalog_source": cfg.Catalog.Source,
		"products":       len(cat.Products()),
	}), "catalog loaded")

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		var err error
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return fmt.Errorf("bootstrap redis: %w", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Info(ctx, "redis not configured; handoff rate limiting disabled")
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuoteMetrics(promRegistry)
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	cartService, err := cart.NewService(cat)
	if err != nil {
		return fmt.Errorf("create cart service: %w", err)
	}

	formatter, err := quote.NewFormatter(quote.Options{
		BusinessName:   cfg.Quote.BusinessName,
		MessagingURL:   cfg.Quote.MessagingURL,
		ContactID:      cfg.Quote.ContactID,
		CurrencySymbol: cfg.Quote.CurrencySymbol,
		VATRate:        cfg.Quote.VATRate,
	}, cat)
	if err != nil {
		return fmt.Errorf("create quote formatter: %w", err)
	}

	sessionRegistry, err := sessions.NewRegistry(sessions.Params{
		Logger:      logg,
		Recorder:    quoteMetrics,
		IdleTTL:     cfg.Sessions.IdleTTL,
		MaxSessions: cfg.Sessions.MaxSessions,
	})
	if err != nil {
		return fmt.Errorf("create session registry: %w", err)
	}

	router := routes.NewRouter(
		cfg,
		logg,
		dbPinger,
		redisClient,
		cat,
		cartService,
		formatter,
		sessionRegistry,
		quoteMetrics,
		httpMetrics,
		promRegistry,
	)

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logg.Info(logg.WithField(groupCtx, "addr", server.Addr), "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		err := sessionRegistry.Run(groupCtx, cfg.Sessions.SweepInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		logg.Info(ctx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
