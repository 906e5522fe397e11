// Command viewertoken backfills viewer tokens for contracts created before
// token issuance existed. Safe to re-run; contracts that already hold a
// token are left untouched.
package main

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/insign-app/backend/config"
	"github.com/insign-app/backend/internal/contracts"
	"github.com/insign-app/backend/pkg/database"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	repo := contracts.NewRepository(pool)

	ids, err := repo.ListMissingViewerToken(ctx)
	if err != nil {
		logger.Fatal("list contracts", zap.Error(err))
	}
	if len(ids) == 0 {
		logger.Info("no contracts missing a viewer token")
		return
	}

	var updated int
	for _, id := range ids {
		token, err := contracts.NewViewerToken()
		if err != nil {
			logger.Fatal("generate token", zap.Error(err))
		}
		if _, err := repo.EnsureViewerToken(ctx, id, token); err != nil {
			logger.Error("backfill token", zap.Int64("contract_id", id), zap.Error(err))
			continue
		}
		updated++
	}

	logger.Info("backfill complete",
		zap.Int("candidates", len(ids)),
		zap.Int("updated", updated),
	)
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
