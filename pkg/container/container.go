package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"festivals-backend/internal/config"
	"festivals-backend/internal/domains/auth"
	authHandler "festivals-backend/internal/domains/auth/handler"
	"festivals-backend/internal/domains/festival"
	festivalHandler "festivals-backend/internal/domains/festival/handler"
	festivalRepo "festivals-backend/internal/domains/festival/repository"
	festivalService "festivals-backend/internal/domains/festival/service"
	infraCache "festivals-backend/internal/infrastructure/cache"
	"festivals-backend/internal/infrastructure/database"
	"festivals-backend/internal/shared/hyper"
	"festivals-backend/pkg/cache"
	"festivals-backend/pkg/jwt"
)

// Container holds the whole dependency graph, built once at startup.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Links      *hyper.Builder

	FestivalRepo    festival.Repository
	FestivalService festival.Service
	FestivalHandler *festivalHandler.FestivalHandler

	Verifier    *auth.Verifier
	AuthHandler *authHandler.AuthHandler

	redis *infraCache.RedisClient
}

// NewContainer initializes config, infrastructure, repositories,
// services and handlers, in that order.
func NewContainer() (*Container, error) {
	c := &Container{}
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	c.DB = database.NewPostgresDB(cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(ctx, cfg.Database.DSN()); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Redis is an optimization, not a dependency: fall back to a no-op
	// cache when it is unreachable.
	redis := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redis.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
		c.Cache = cache.Noop()
	} else {
		c.redis = redis
		c.Cache = redis
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	c.Links = hyper.NewBuilder(cfg.App.BaseURL, cfg.App.Port, cfg.App.CollectionName)

	c.FestivalRepo = festivalRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.FestivalService = festivalService.NewFestivalService(c.FestivalRepo, c.Links)
	c.FestivalHandler = festivalHandler.NewFestivalHandler(c.FestivalService, c.JWTManager)

	c.Verifier = auth.NewVerifier(cfg.Auth, c.JWTManager)
	c.AuthHandler = authHandler.NewAuthHandler(c.Verifier)

	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
