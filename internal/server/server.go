package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/grocerease/backend/config"
	"github.com/grocerease/backend/internal/api"
	"github.com/grocerease/backend/internal/logger"
	"github.com/grocerease/backend/internal/matcher"
	"github.com/grocerease/backend/internal/middleware"
	"github.com/grocerease/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
}

// New wires the services and routes. rdb and s3Cfg are optional: without
// Redis the catalog is read from the database on every search and no rate
// limits apply, and without S3 image uploads answer 503.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, s3Cfg *config.S3Config, policy matcher.Policy) (*Server, error) {
	empty, err := matcher.ParseEmptyQueryPolicy(cfg.EmptyQueryPolicy)
	if err != nil {
		return nil, fmt.Errorf("empty query policy: %w", err)
	}

	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger.L()))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	var cache *service.CatalogCache
	svc := api.Services{
		Auth:      service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL),
		Favorites: service.NewFavoriteService(db),
		Bookmarks: service.NewBookmarkService(db),
		Images:    service.NewImageService(s3Cfg),
	}
	if rdb != nil {
		if cfg.CatalogCacheTTL > 0 {
			cache = service.NewCatalogCache(rdb, cfg.CatalogCacheTTL)
		}
		if cfg.LoginRateLimit > 0 {
			svc.LoginLimiter = middleware.NewLoginRateLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)
		}
		svc.CreationLimiter = middleware.NewRecipeCreationRateLimiter(rdb)
		svc.ModificationLimiter = middleware.NewRecipeModificationRateLimiter(rdb)
	}
	svc.Recipes = service.NewRecipeService(db, cache, policy, empty)

	api.RegisterRoutes(router, svc)

	logger.Info("routes registered",
		zap.String("empty_query_policy", empty.String()),
		zap.Bool("catalog_cache", cache != nil),
		zap.Bool("rate_limits", rdb != nil),
		zap.Bool("image_storage", s3Cfg != nil),
	)

	return &Server{
		cfg:    cfg,
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           middleware.ErrorHandler(router),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start listens until Shutdown is called. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
