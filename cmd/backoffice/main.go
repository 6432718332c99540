// Package main is the back office command line: price quotes and financial reports.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/gamevault/backoffice/config"
	"github.com/gamevault/backoffice/internal/cli/commands"
	"github.com/gamevault/backoffice/internal/infra/cache"
	"github.com/gamevault/backoffice/internal/infra/db"
	"github.com/gamevault/backoffice/internal/infra/dependency"
)

// app opens connections on first use so flag errors never touch the database.
type app struct {
	injector *dependency.Injector
	closers  []func() error
}

func (a *app) provide(ctx context.Context) (*dependency.Injector, error) {
	if a.injector != nil {
		return a.injector, nil
	}

	cfg := config.Load()

	database, err := db.NewPostgresConnection(&cfg.Database, cfg.Server.Environment)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, database.Close)

	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, running without report cache", "error", err)
		} else {
			redisClient = client
			a.closers = append(a.closers, client.Close)
		}
	}

	inj, err := dependency.NewInjector(cfg, database.DB(), redisClient)
	if err != nil {
		return nil, err
	}
	a.injector = inj
	return inj, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Error("Failed to close connection", "error", err)
		}
	}
}

func main() {
	_ = godotenv.Load()

	// Logs go to stderr so command output stays pipeable.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "backoffice",
		Short:         "Game reseller back office tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(commands.NewQuoteCmd(a.provide))
	rootCmd.AddCommand(commands.NewReportCmd(a.provide))

	err := rootCmd.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
