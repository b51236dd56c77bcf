package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shortlist/internal/config"
	dbpostgres "shortlist/internal/database/postgres"
	"shortlist/internal/infrastructure/cache"
	"shortlist/internal/search"
	"shortlist/internal/store"
	"shortlist/internal/usecase"
)

type Container struct {
	Config     config.Config
	Logger     *zap.Logger
	Store      *store.Snapshot
	Cache      *cache.Redis
	Candidates usecase.CandidateUsecase
}

// NewContainer loads the candidate snapshot and wires the read path. The
// database, if used, is only needed during loading and is closed before
// returning.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	snap, err := loadSnapshot(ctx, cfg, logger.Named("store"))
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger.Named("cache"))
	var searchCache usecase.SearchCache
	if redisCache.Enabled() {
		searchCache = redisCache
		purgeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisCache.DeleteByPrefix(purgeCtx, usecase.SearchKeyPrefix); err != nil {
			logger.Warn("purging cached pages failed", zap.Error(err))
		}
		cancel()
	}

	engine := search.NewEngine(logger.Named("search"))
	uc := usecase.NewCandidateUsecase(snap, engine, searchCache, cfg.HTTP.MaxPageLimit, logger.Named("candidates"))

	return &Container{
		Config:     cfg,
		Logger:     logger,
		Store:      snap,
		Cache:      redisCache,
		Candidates: uc,
	}, nil
}

func loadSnapshot(ctx context.Context, cfg config.Config, logger *zap.Logger) (*store.Snapshot, error) {
	if cfg.Data.Source != config.SourcePostgres {
		return store.Load(ctx, store.NewFileSource(cfg.Data.Path), cfg.Data.LoadFatal, logger)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connCtx, cfg.Database)
	if err != nil {
		if cfg.Data.LoadFatal {
			return nil, fmt.Errorf("connect candidate database: %w", err)
		}
		logger.Error("candidate database unreachable, serving empty store", zap.Error(err))
		return store.Empty(config.SourcePostgres), nil
	}
	defer func() { _ = db.Close() }()

	return store.Load(connCtx, store.NewPostgresSource(db, cfg.Data.Query), cfg.Data.LoadFatal, logger)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return c.Cache.Close()
}
