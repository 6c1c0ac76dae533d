package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klofan/hanjie-server/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

func Connect(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.NewPgxpoolConfig()
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}

func Migrate() (*migrate.Migrate, error) {
	url, err := config.DbURL()
	if err != nil {
		return nil, err
	}
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("unable to create migrations iofs: %w", err)
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return nil, fmt.Errorf("unable to create migrator: %w", err)
	}
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return migrator, nil
}

func ConnectAndMigrate(ctx context.Context) (*pgxpool.Pool, *migrate.Migrate, error) {
	conn, err := Connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	migrator, err := Migrate()
	if err != nil {
		return nil, nil, err
	}
	return conn, migrator, nil
}
