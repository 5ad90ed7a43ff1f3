package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/nokokiii/API-Engineering-Exam/internal/app"
	"github.com/nokokiii/API-Engineering-Exam/internal/config"
	"github.com/nokokiii/API-Engineering-Exam/internal/database"
	"github.com/nokokiii/API-Engineering-Exam/internal/handlers"
	"github.com/nokokiii/API-Engineering-Exam/internal/logger"
)

func main() {
	cliApp := &cli.App{
		Name:  "users-api",
		Usage: "CRUD service for the users resource",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: ".env file to load"},
			&cli.StringFlag{Name: "addr", Usage: "listen address (overrides USERS_ADDR)"},
			&cli.StringFlag{Name: "store", Usage: "memory, sqlite, postgres, mysql or mongo (overrides USERS_STORE)"},
			&cli.StringFlag{Name: "dsn", Usage: "SQL data source name (overrides USERS_DSN)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (overrides USERS_LOG_LEVEL)"},
			&cli.IntFlag{Name: "seed", Usage: "ensure at least this many demo users exist (overrides USERS_SEED)"},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Apply SQL schema migrations and exit",
				Action: migrateSchema,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("addr") {
		cfg.Addr = c.String("addr")
	}
	if c.IsSet("store") {
		cfg.Store = c.String("store")
	}
	if c.IsSet("dsn") {
		cfg.DSN = c.String("dsn")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int("seed")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

func storeOptions(cfg *config.Config) database.Options {
	return database.Options{
		Driver:        cfg.Store,
		DSN:           cfg.DSN,
		MongoURI:      cfg.MongoURI,
		MongoDatabase: cfg.MongoDatabase,
		Collection:    cfg.Collection,
	}
}

func migrateSchema(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	dialect, err := database.ParseDialect(cfg.Store)
	if err != nil {
		return err
	}
	if err := database.Migrate(dialect, cfg.DSN); err != nil {
		return err
	}
	log.Info().Str("store", cfg.Store).Msg("migrations applied")
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, storeOptions(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Seed > 0 {
		if err := database.Seed(ctx, store, cfg.Seed); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handlers.NewRouter(app.New(store)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server shutdown complete")
	return nil
}
