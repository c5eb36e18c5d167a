package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/order-parser/app/models"
)

// RedisCacheService cache service sử dụng Redis
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService tạo mới Redis cache service
func NewRedisCacheService(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Redis: %w", err)
	}

	return newRedisCacheService(client, ttl, logger), nil
}

func newRedisCacheService(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCacheService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: "order_parser:",
		ttl:    ttl,
	}
}

func (rcs *RedisCacheService) versionKey(version string) string {
	return rcs.prefix + "version:" + version
}

// Get lấy kết quả parse từ cache
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.OrderResult, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		rcs.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("Lỗi get từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var result models.OrderResult
	if err := json.Unmarshal(val, &result); err != nil {
		rcs.logger.Error("Lỗi unmarshal cache data", zap.Error(err))
		return nil, false, err
	}

	rcs.hits.Add(1)
	rcs.logger.Debug("Redis cache hit", zap.String("key", key))
	return &result, true, nil
}

// Set lưu kết quả vào cache và ghi key vào tập key của phiên bản lexicon
func (rcs *RedisCacheService) Set(ctx context.Context, key string, result *models.OrderResult) error {
	cacheKey := rcs.prefix + key

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("lỗi marshal cache data: %w", err)
	}

	versionKey := rcs.versionKey(result.LexiconVersion)
	_, err = rcs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, cacheKey, data, rcs.ttl)
		pipe.SAdd(ctx, versionKey, cacheKey)
		pipe.Expire(ctx, versionKey, rcs.ttl)
		return nil
	})
	if err != nil {
		rcs.logger.Error("Lỗi set vào Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}

	rcs.logger.Debug("Đã lưu vào Redis cache", zap.String("key", key))
	return nil
}

// Delete xóa key khỏi cache
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	cacheKey := rcs.prefix + key

	if err := rcs.client.Del(ctx, cacheKey).Err(); err != nil {
		rcs.logger.Error("Lỗi delete từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

// Clear xóa toàn bộ cache
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	keys, err := rcs.client.Keys(ctx, rcs.prefix+"*").Result()
	if err != nil {
		return fmt.Errorf("lỗi lấy danh sách keys: %w", err)
	}

	if len(keys) > 0 {
		if err := rcs.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("lỗi xóa keys: %w", err)
		}
	}
	rcs.hits.Store(0)
	rcs.misses.Store(0)

	rcs.logger.Info("Đã clear Redis cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

// InvalidateByLexiconVersion xóa các key thuộc phiên bản lexicon khác
func (rcs *RedisCacheService) InvalidateByLexiconVersion(ctx context.Context, lexiconVersion string) error {
	versionKeys, err := rcs.client.Keys(ctx, rcs.versionKey("*")).Result()
	if err != nil {
		return fmt.Errorf("lỗi lấy danh sách phiên bản: %w", err)
	}

	current := rcs.versionKey(lexiconVersion)
	deleted := 0
	for _, vk := range versionKeys {
		if vk == current {
			continue
		}
		members, err := rcs.client.SMembers(ctx, vk).Result()
		if err != nil {
			return fmt.Errorf("lỗi đọc %s: %w", vk, err)
		}
		if err := rcs.client.Del(ctx, append(members, vk)...).Err(); err != nil {
			return fmt.Errorf("lỗi xóa keys của %s: %w", strings.TrimPrefix(vk, rcs.prefix), err)
		}
		deleted += len(members)
	}

	rcs.logger.Info("Đã invalidate Redis cache",
		zap.String("lexicon_version", lexiconVersion),
		zap.Int("keys_deleted", deleted))
	return nil
}

// GetStats lấy thống kê cache
func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := rcs.hits.Load(), rcs.misses.Load()

	totalItems := int64(0)
	keys, err := rcs.client.Keys(ctx, rcs.prefix+"sha256:*").Result()
	if err != nil {
		rcs.logger.Warn("Không thể đếm keys Redis", zap.Error(err))
	} else {
		totalItems = int64(len(keys))
	}

	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: totalItems,
	}, nil
}

// Exists kiểm tra key có tồn tại không
func (rcs *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	n, err := rcs.client.Exists(ctx, rcs.prefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetTTL lấy TTL của key
func (rcs *RedisCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return rcs.client.TTL(ctx, rcs.prefix+key).Result()
}

// Close đóng kết nối Redis
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}
