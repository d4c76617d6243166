package main

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/grocerease/backend/config"
	"github.com/grocerease/backend/internal/database"
	"github.com/grocerease/backend/internal/logger"
	"github.com/grocerease/backend/internal/matcher"
	"github.com/grocerease/backend/internal/model"
	"github.com/grocerease/backend/internal/service"
)

//go:embed recipes.yaml
var seedFile []byte

type seedRecipe struct {
	Name          string `yaml:"name"`
	Category      string `yaml:"category"`
	Servings      int    `yaml:"servings"`
	EstimatedCost int    `yaml:"estimated_cost"`
	Ingredients   string `yaml:"ingredients"`
	Instructions  string `yaml:"instructions"`
}

func loadSeed(data []byte) ([]seedRecipe, error) {
	var recipes []seedRecipe
	if err := yaml.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("parse seed recipes: %w", err)
	}
	for i, r := range recipes {
		if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Ingredients) == "" {
			return nil, fmt.Errorf("seed recipe %d: name and ingredients are required", i)
		}
	}
	return recipes, nil
}

func main() {
	logger.Init(string(config.GetEnvironment()))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	recipes, err := loadSeed(seedFile)
	if err != nil {
		logger.Fatal("invalid seed data", zap.Error(err))
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.DSN()); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// seeding changes the catalog, so a running API's cache must be dropped
	var cache *service.CatalogCache
	if rdb, err := database.NewRedisClient(cfg); err == nil {
		defer rdb.Close()
		cache = service.NewCatalogCache(rdb, cfg.CatalogCacheTTL)
	}
	svc := service.NewRecipeService(db, cache, matcher.DefaultPolicy(), matcher.ShowAll)

	ctx := context.Background()
	created := 0
	for _, r := range recipes {
		var count int64
		if err := db.Model(&model.Recipe{}).Where("name = ?", r.Name).Count(&count).Error; err != nil {
			logger.Fatal("failed to check existing recipe", zap.String("name", r.Name), zap.Error(err))
		}
		if count > 0 {
			logger.Info("recipe already exists, skipping", zap.String("name", r.Name))
			continue
		}

		_, err := svc.CreateRecipe(ctx, &model.Recipe{
			Name:          r.Name,
			Category:      r.Category,
			Servings:      r.Servings,
			EstimatedCost: r.EstimatedCost,
			Ingredients:   strings.TrimSpace(r.Ingredients),
			Instructions:  strings.TrimSpace(r.Instructions),
		})
		if err != nil {
			logger.Error("failed to save recipe", zap.String("name", r.Name), zap.Error(err))
			continue
		}
		created++
		logger.Info("created recipe", zap.String("name", r.Name), zap.String("category", r.Category))
	}

	logger.Info("seeding finished", zap.Int("created", created), zap.Int("total", len(recipes)))
}
