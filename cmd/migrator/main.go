package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/klofan/hanjie-server/internal/config"
	"github.com/klofan/hanjie-server/internal/database"
)

func main() {
	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	migrator, err := database.Migrate()
	if err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		logger.Error("failed to check migration version", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("migration successful",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
}
