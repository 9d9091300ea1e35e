package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vitrineshop/vitrine-backend/pkg/db"
	pkgerrors "github.com/vitrineshop/vitrine-backend/pkg/errors"
	"github.com/vitrineshop/vitrine-backend/pkg/logger"
	"github.com/vitrineshop/vitrine-backend/pkg/redis"
)

// Service exposes the typed store settings with a cached read path.
type Service interface {
	Get(ctx context.Context) (StoreSettings, error)
	Save(ctx context.Context, input StoreSettings) (StoreSettings, error)
}

type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SettingsKey() string
}

// ServiceParams groups the settings service dependencies. Cache is optional;
// without it every read hits the database.
type ServiceParams struct {
	Repo     *Repository
	DBClient *db.Client
	Cache    cache
	CacheTTL time.Duration
	Logger   *logger.Logger
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	cache    cache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService constructs a settings service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if params.DBClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:     params.Repo,
		dbClient: params.DBClient,
		cache:    params.Cache,
		cacheTTL: params.CacheTTL,
		logg:     params.Logger,
	}, nil
}

func (s *service) Get(ctx context.Context) (StoreSettings, error) {
	if cached, ok := s.readCache(ctx); ok {
		return cached, nil
	}

	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return StoreSettings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}

	byKey := make(map[string]string, len(rows))
	for _, row := range rows {
		byKey[row.Key] = row.Value
	}
	loaded := fromRows(byKey)

	s.writeCache(ctx, loaded)
	return loaded, nil
}

// Save upserts every settings row atomically and drops the cached blob.
func (s *service) Save(ctx context.Context, input StoreSettings) (StoreSettings, error) {
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for key, value := range input.toRows() {
			if err := txRepo.Upsert(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return StoreSettings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save settings")
	}

	s.dropCache(ctx)
	return input, nil
}

func (s *service) readCache(ctx context.Context) (StoreSettings, bool) {
	if s.cache == nil {
		return StoreSettings{}, false
	}

	raw, err := s.cache.Get(ctx, s.cache.SettingsKey())
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) && s.logg != nil {
			s.logg.Warn(ctx, "settings cache read failed")
		}
		return StoreSettings{}, false
	}

	var cached StoreSettings
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		s.dropCache(ctx)
		return StoreSettings{}, false
	}
	return cached, true
}

func (s *service) writeCache(ctx context.Context, value StoreSettings) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.SettingsKey(), raw, s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "settings cache write failed")
	}
}

func (s *service) dropCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.SettingsKey()); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "settings cache invalidation failed")
	}
}
