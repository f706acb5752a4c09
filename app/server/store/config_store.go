package store

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"hello-world-site/app/server/constants"
	"hello-world-site/app/server/models"
	"sort"
)

var errStaleCache = errors.New("site config changed while loading")

// Display is the pair of titles shown on the public page.
type Display struct {
	MainTitle string
	SubTitle  string
}

// ConfigStore reads and writes site config entries. When a redis client is
// given, GetAll reads through a short-lived cache that Set invalidates. A fill
// only lands if no write bumped the cache version since the fill's DB read
// started.
type ConfigStore struct {
	db  *gorm.DB
	rdb *redis.Client // 可以为 nil
	l   *zap.Logger
}

func NewConfigStore(db *gorm.DB, rdb *redis.Client, l *zap.Logger) *ConfigStore {
	return &ConfigStore{db: db, rdb: rdb, l: l}
}

// Get returns the value for key; ok is false when the key is absent.
func (s *ConfigStore) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	err = withTx(ctx, s.db, func(tx *gorm.DB) error {
		var entry models.ConfigEntry
		if err := tx.First(&entry, "config_key = ?", key).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		value, ok = entry.Value, true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, ok, nil
}

// GetAll returns every config entry as key -> value.
func (s *ConfigStore) GetAll(ctx context.Context) (map[string]string, error) {
	if cached := s.cacheGet(ctx); cached != nil {
		return cached, nil
	}

	// 读数据库之前记下版本号
	version, versionOK := s.cacheVersion(ctx)

	all := make(map[string]string)
	if err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		var entries []models.ConfigEntry
		if err := tx.Find(&entries).Error; err != nil {
			return err
		}
		for _, e := range entries {
			all[e.Key] = e.Value
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("get all config: %w", err)
	}

	if versionOK {
		s.cacheSet(ctx, version, all)
	}
	return all, nil
}

// GetDisplay materializes the two public titles, substituting defaults for
// missing keys.
func (s *ConfigStore) GetDisplay(ctx context.Context) (*Display, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return displayFrom(all), nil
}

func displayFrom(all map[string]string) *Display {
	d := &Display{
		MainTitle: constants.DefaultMainTitle,
		SubTitle:  constants.DefaultSubTitle,
	}
	if v, ok := all[constants.ConfigKeyMainTitle]; ok {
		d.MainTitle = v
	}
	if v, ok := all[constants.ConfigKeySubTitle]; ok {
		d.SubTitle = v
	}
	return d
}

// Set upserts a single entry, refreshing updated_at.
func (s *ConfigStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

// SetMany upserts all given entries in one transaction.
func (s *ConfigStore) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	// 固定顺序，避免并发写入时的锁顺序不一致
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		for _, k := range keys {
			if err := upsertConfig(tx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("set config: %w", err)
	}

	s.cacheInvalidate(ctx)
	return nil
}

// SeedDefaults inserts the default titles when they are absent; existing
// values are left untouched.
func (s *ConfigStore) SeedDefaults(ctx context.Context) error {
	if err := withTx(ctx, s.db, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "config_key"}},
			DoNothing: true,
		}).Create([]*models.ConfigEntry{
			{Key: constants.ConfigKeyMainTitle, Value: constants.DefaultMainTitle},
			{Key: constants.ConfigKeySubTitle, Value: constants.DefaultSubTitle},
		}).Error
	}); err != nil {
		return fmt.Errorf("seed default config: %w", err)
	}

	s.cacheInvalidate(ctx)
	return nil
}

func upsertConfig(tx *gorm.DB, key, value string) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"config_value": value,
			"updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&models.ConfigEntry{Key: key, Value: value}).Error
}

func (s *ConfigStore) cacheGet(ctx context.Context) map[string]string {
	if s.rdb == nil {
		return nil
	}
	cached, err := s.rdb.HGetAll(ctx, constants.CacheKeySiteConfig).Result()
	if err != nil {
		s.l.Error("failed to query cache for site config", zap.Error(err))
		return nil
	}
	if len(cached) == 0 {
		return nil
	}
	return cached
}

// cacheVersion 读取当前缓存版本，键不存在时为 0 ；出错时不写缓存
func (s *ConfigStore) cacheVersion(ctx context.Context) (int64, bool) {
	if s.rdb == nil {
		return 0, false
	}
	version, err := s.rdb.Get(ctx, constants.CacheKeySiteConfigVersion).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.l.Error("failed to query site config cache version", zap.Error(err))
		return 0, false
	}
	return version, true
}

// cacheSet 仅在版本号未变化时写入缓存，期间有写入则放弃
func (s *ConfigStore) cacheSet(ctx context.Context, version int64, all map[string]string) {
	if s.rdb == nil || len(all) == 0 {
		return
	}
	fields := make(map[string]interface{}, len(all))
	for k, v := range all {
		fields[k] = v
	}

	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, constants.CacheKeySiteConfigVersion).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleCache
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, constants.CacheKeySiteConfig, fields)
			pipe.Expire(ctx, constants.CacheKeySiteConfig, constants.CacheExpireSiteConfig)
			return nil
		})
		return err
	}, constants.CacheKeySiteConfigVersion)

	switch {
	case err == nil:
	case errors.Is(err, errStaleCache), errors.Is(err, redis.TxFailedErr):
		s.l.Debug("skip caching stale site config")
	default:
		s.l.Error("failed to cache site config", zap.Error(err))
	}
}

func (s *ConfigStore) cacheInvalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if _, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, constants.CacheKeySiteConfigVersion)
		pipe.Del(ctx, constants.CacheKeySiteConfig)
		return nil
	}); err != nil {
		s.l.Error("failed to invalidate site config cache", zap.Error(err))
	}
}
