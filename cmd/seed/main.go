// Package main seeds the Bolor Travel organization account for local
// development: an organization user plus its profile, skipped when the
// account already exists.
package main

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ulmj7/fulltravelapp/config"
	"github.com/Ulmj7/fulltravelapp/internal/admin"
	"github.com/Ulmj7/fulltravelapp/pkg/database"
	"github.com/Ulmj7/fulltravelapp/pkg/utils"
)

const (
	seedEmail    = "bolortravel@gmail.com"
	seedPassword = "bolortravel123"
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

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	repo := admin.NewRepository(pool)

	exists, err := repo.UserExists(ctx, seedEmail)
	if err != nil {
		logger.Fatal("check user", zap.Error(err))
	}
	if exists {
		logger.Info("Bolor Travel already exists, nothing to do")
		return
	}

	hash, err := utils.HashPassword(seedPassword)
	if err != nil {
		logger.Fatal("hash password", zap.Error(err))
	}

	user, org, err := repo.CreateOrganization(ctx, seedEmail, hash,
		"Bolor Travel",
		"Leading travel agency in Mongolia specializing in cultural tours and adventure programs",
		"+976 7011-1234",
		"Ulaanbaatar, Mongolia")
	if err != nil {
		logger.Fatal("create organization", zap.Error(err))
	}

	logger.Info("Bolor Travel created",
		zap.String("user_id", user.ID.String()),
		zap.String("organization_id", org.ID.String()),
		zap.String("email", seedEmail),
	)
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
