package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/grocerease/backend/config"
	"github.com/grocerease/backend/internal/database"
	"github.com/grocerease/backend/internal/logger"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback applied migrations")
	steps := flag.Int("steps", 1, "Number of migrations to roll back with -rollback")
	version := flag.Bool("version", false, "Print the current schema version and exit")
	flag.Parse()

	logger.Init(string(config.GetEnvironment()))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	dsn := cfg.DSN()

	switch {
	case *version:
		v, dirty, err := database.MigrationVersion(dsn)
		if err != nil {
			logger.Fatal("failed to read schema version", zap.Error(err))
		}
		fmt.Printf("version %d (dirty: %t)\n", v, dirty)
	case *rollback:
		if err := database.MigrateDown(dsn, *steps); err != nil {
			logger.Fatal("rollback failed", zap.Error(err))
		}
		fmt.Printf("Successfully rolled back %d migration(s)\n", *steps)
	default:
		if err := database.MigrateUp(dsn); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		fmt.Println("All migrations applied successfully.")
	}
}
