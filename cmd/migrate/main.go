package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/excavacionesmoreno/quote-backend/internal/catalog"
	"github.com/excavacionesmoreno/quote-backend/pkg/config"
	"github.com/excavacionesmoreno/quote-backend/pkg/db"
	"github.com/excavacionesmoreno/quote-backend/pkg/logger"
	"github.com/excavacionesmoreno/quote-backend/pkg/migrate"
)

func main() {
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|up-to|down-to|validate|seed")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=up-to|down-to")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"cmd":    *cmd,
		"driver": cfg.DB.Driver,
	})

	if *cmd == "validate" {
		if err := migrate.ValidateFS(migrate.Migrations(), migrate.DefaultDir); err != nil {
			fmt.Fprintf(os.Stderr, "migration validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migration validation passed")
		return
	}

	// Everything else needs DB
	requireResource(ctx, logg, "database config", cfg.DB.EnsureDSN())

	if err := run(ctx, cfg, logg, *cmd, *version); err != nil {
		fmt.Fprintf(os.Stderr, "migrate %s failed: %v\n", *cmd, err)
		os.Exit(1)
	}
}

// run executes a database command; the connection is closed before it returns.
func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, cmd, version string) error {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer dbClient.Close()

	sqlDB, err := dbClient.SQL()
	if err != nil {
		return fmt.Errorf("sql database: %w", err)
	}

	logg.Info(ctx, "migrate ready")

	switch cmd {
	case "up", "down", "status", "version":
		return migrate.Run(ctx, sqlDB, dbClient.Driver(), cmd)

	case "up-to", "down-to":
		if version == "" {
			return fmt.Errorf("missing -version for %s command", cmd)
		}
		return migrate.Run(ctx, sqlDB, dbClient.Driver(), cmd, version)

	case "seed":
		if err := catalog.NewRepository(dbClient.DB()).Sync(ctx, catalog.Default()); err != nil {
			return fmt.Errorf("catalog seed: %w", err)
		}
		logg.Info(ctx, "catalog seeded")
		return nil

	default:
		return fmt.Errorf("unknown -cmd value %q", cmd)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
