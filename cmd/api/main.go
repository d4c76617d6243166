package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/grocerease/backend/config"
	"github.com/grocerease/backend/internal/database"
	"github.com/grocerease/backend/internal/logger"
	"github.com/grocerease/backend/internal/matcher"
	"github.com/grocerease/backend/internal/server"
)

func main() {
	logger.Init(string(config.GetEnvironment()))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	policy, err := matcher.LoadPolicy(cfg.MatchPolicyFile)
	if err != nil {
		logger.Fatal("failed to load match policy", zap.String("path", cfg.MatchPolicyFile), zap.Error(err))
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.DSN()); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis and S3 are optional; the API degrades without them
	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis unavailable, running without cache and rate limits", zap.Error(err))
	} else {
		defer rdb.Close()
	}

	var s3Cfg *config.S3Config
	if cfg.S3Bucket != "" {
		s3Cfg, err = config.NewS3Config(context.Background(), cfg)
		if err != nil {
			logger.Warn("s3 unavailable, image uploads disabled", zap.Error(err))
		}
	}

	srv, err := server.New(cfg, db, rdb, s3Cfg, policy)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	logger.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
}
