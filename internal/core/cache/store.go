package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"batch-maker/internal/infrastructure/config"
	"batch-maker/internal/pkg/common"
)

// Store 以字串為值的快取，找不到時回傳 common.ErrCacheMiss
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// New 依設定建立快取後端；停用時回傳 nil
func New(cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Backend {
	case config.CacheBackendRedis:
		store, err := NewRedisStore(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheBackendMemory, "":
		return NewMemoryStore(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// RecipeKey 由正規化後的網址產生快取鍵
func RecipeKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "url:" + hex.EncodeToString(hash[:])
}
