package main

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dailypack/internal/config"
	"dailypack/internal/repository/postgres"
	"dailypack/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, ledger, closeDB, err := ledgerService()
	if err != nil {
		return err
	}
	defer closeDB()

	logger.Info("Running ledger cleanup", zap.Int("retention_days", cfg.Database.RetentionDays))
	return ledger.CleanupOldRuns()
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, ledger, closeDB, err := ledgerService()
	if err != nil {
		return err
	}
	defer closeDB()

	day, err := resolveDay(cfg)
	if err != nil {
		return err
	}

	runs, err := ledger.History(day.Key())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintf(out, "No runs recorded for %s\n", day.Key())
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(out, "%s  %s  %s  %s  placeholders %d/%d\n",
			run.CreatedAt.Format(time.RFC3339), run.ID, run.Theme, run.Provider, run.Placeholders(), len(run.Images))
		for _, img := range run.Images {
			fmt.Fprintf(out, "    %-10s %s  %s (%d bytes)\n", img.Word, img.Path, img.Source, img.Bytes)
		}
	}
	return nil
}

func ledgerService() (*config.Config, *service.LedgerService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Database.Enabled {
		return nil, nil, nil, errors.New("run ledger is disabled; set DB_ENABLED=true")
	}

	db, err := openLedger(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	ledger := service.NewLedgerService(postgres.NewRunRepo(db), cfg.Database.RetentionDays, logger)
	return cfg, ledger, func() { db.Close() }, nil
}

// openLedger connects and migrates the run ledger database
func openLedger(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 5
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// One short batch run needs few connections
		db.SetMaxOpenConns(2)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
