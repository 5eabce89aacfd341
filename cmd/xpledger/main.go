package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/xpledger/internal/cli"
	"github.com/alexanderramin/xpledger/internal/config"
	"github.com/alexanderramin/xpledger/internal/db"
	"github.com/alexanderramin/xpledger/internal/logging"
	"github.com/alexanderramin/xpledger/internal/repository"
	"github.com/alexanderramin/xpledger/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	var console io.Writer
	if cfg.LogFile == "" || cfg.LogLevel == "debug" {
		console = os.Stderr
	}
	logger, closer, err := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: console,
	})
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	defer closer.Close()

	rules, err := config.LoadRules(cfg.ScoringPath)
	if err != nil {
		return err
	}

	store, database, err := openStore(cfg)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}
	logger.Debug("store opened", "backend", string(cfg.Backend), "dsn", cfg.SafeDSN())

	observer := service.NewLogUseCaseObserver(logger)
	progress := service.NewProgressService(store, rules.Config, rules.Badges, service.WithObserver(observer))

	app := &cli.App{
		Users:     service.NewUserService(store, observer),
		Scores:    service.NewScoreService(store, rules.Config, observer),
		Progress:  progress,
		Runner:    service.NewDailyRunner(store, progress, logger),
		Rules:     rules,
		RulesPath: cfg.ScoringPath,
		Username:  cfg.Username,
	}

	// Prompts only make sense on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	slog.SetDefault(logger)
	return cli.NewRootCmd(app).Execute()
}

// openStore returns the configured user store. The *sql.DB is nil for the
// JSON backend.
func openStore(cfg config.AppConfig) (repository.UserStore, *sql.DB, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating data directory: %w", err)
		}
		return repository.NewJSONUserStore(cfg.DSN), nil, nil
	case config.BackendPostgres:
		database, err := db.OpenPostgres(cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLUserStore(database, db.Postgres), database, nil
	default:
		database, err := db.OpenDB(cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLUserStore(database, db.SQLite), database, nil
	}
}
