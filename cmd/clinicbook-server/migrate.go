package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"clinicbook/backend/internal/config"
	"clinicbook/backend/internal/store/postgres"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(ctx context.Context, db *bun.DB, log zerolog.Logger) error {
				group, err := postgres.Migrate(ctx, db)
				if err != nil {
					return fmt.Errorf("migrate up: %w", err)
				}
				logMigrationGroup(log, "migrated", group)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration group",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(ctx context.Context, db *bun.DB, log zerolog.Logger) error {
				group, err := postgres.Rollback(ctx, db)
				if err != nil {
					return fmt.Errorf("migrate down: %w", err)
				}
				logMigrationGroup(log, "rolled back", group)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(ctx context.Context, db *bun.DB, log zerolog.Logger) error {
				ms, err := postgres.MigrationStatus(ctx, db)
				if err != nil {
					return fmt.Errorf("migrate status: %w", err)
				}
				for _, m := range ms {
					evt := log.Info().Str("migration", m.Name)
					if m.IsApplied() {
						evt = evt.Int64("group", m.GroupID).Time("migrated_at", m.MigratedAt)
					}
					evt.Bool("applied", m.IsApplied()).Msg("migration")
				}
				log.Info().
					Int("applied", len(ms.Applied())).
					Int("pending", len(ms.Unapplied())).
					Msg("migration status")
				return nil
			})
		},
	})
	return cmd
}

func withDatabase(fn func(ctx context.Context, db *bun.DB, log zerolog.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.DatabaseDriver != config.DriverPostgres {
		return fmt.Errorf("migrations need database.driver=postgres, got %q", cfg.DatabaseDriver)
	}

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Warn().Err(err).Msg("database close failed")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	return fn(ctx, db, log)
}

func openDatabase(cfg config.Config, log zerolog.Logger) (*bun.DB, error) {
	log.Info().Dict("db", databaseLogDict(cfg.DatabaseURL)).Msg("connecting to database")
	db, err := postgres.Open(cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		log.Error().Err(err).Dict("db", databaseLogDict(cfg.DatabaseURL)).Msg("database connection failed")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgres.Ping(ctx, db); err != nil {
		_ = postgres.Close(db)
		log.Error().Err(err).Dict("db", databaseLogDict(cfg.DatabaseURL)).Msg("database ping failed")
		return nil, err
	}
	return db, nil
}

func logMigrationGroup(log zerolog.Logger, verb string, group *migrate.MigrationGroup) {
	if group == nil || group.IsZero() {
		log.Info().Msg("no migrations to run")
		return
	}
	names := make([]string, 0, len(group.Migrations))
	for _, m := range group.Migrations {
		names = append(names, m.Name)
	}
	log.Info().Int64("group", group.ID).Strs("migrations", names).Msg(verb)
}
