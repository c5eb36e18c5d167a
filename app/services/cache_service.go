package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/order-parser/app/models"
)

type cacheEntry struct {
	result   *models.OrderResult
	storedAt time.Time
}

// CacheService cache in-memory dùng LRU có giới hạn kích thước, kèm TTL
type CacheService struct {
	cache *lru.Cache[string, cacheEntry]
	ttl   time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheService tạo mới CacheService. ttl <= 0 nghĩa là không hết hạn.
func NewCacheService(size int, ttl time.Duration) (*CacheService, error) {
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo LRU cache: %w", err)
	}
	return &CacheService{cache: cache, ttl: ttl}, nil
}

// Get lấy kết quả từ cache
func (cs *CacheService) Get(ctx context.Context, key string) (*models.OrderResult, bool, error) {
	entry, ok := cs.cache.Get(key)
	if !ok || cs.isExpired(entry) {
		if ok {
			cs.cache.Remove(key)
		}
		cs.misses.Add(1)
		return nil, false, nil
	}
	cs.hits.Add(1)
	return entry.result, true, nil
}

// Set lưu kết quả vào cache
func (cs *CacheService) Set(ctx context.Context, key string, result *models.OrderResult) error {
	cs.cache.Add(key, cacheEntry{result: result, storedAt: time.Now()})
	return nil
}

// Delete xóa item khỏi cache
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	cs.cache.Remove(key)
	return nil
}

// Clear xóa toàn bộ cache
func (cs *CacheService) Clear(ctx context.Context) error {
	cs.cache.Purge()
	cs.hits.Store(0)
	cs.misses.Store(0)
	return nil
}

// InvalidateByLexiconVersion xóa các kết quả thuộc phiên bản lexicon khác
func (cs *CacheService) InvalidateByLexiconVersion(ctx context.Context, lexiconVersion string) error {
	for _, key := range cs.cache.Keys() {
		if entry, ok := cs.cache.Peek(key); ok && entry.result.LexiconVersion != lexiconVersion {
			cs.cache.Remove(key)
		}
	}
	return nil
}

// GetStats lấy thống kê cache
func (cs *CacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := cs.hits.Load(), cs.misses.Load()
	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(cs.cache.Len()),
	}, nil
}

// Exists kiểm tra key có tồn tại (và chưa hết hạn) không
func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	entry, ok := cs.cache.Peek(key)
	return ok && !cs.isExpired(entry), nil
}

// GetTTL lấy TTL còn lại của key
func (cs *CacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	entry, ok := cs.cache.Peek(key)
	if !ok || cs.ttl <= 0 {
		return 0, nil
	}
	return max(0, cs.ttl-time.Since(entry.storedAt)), nil
}

// CleanupExpired xóa các item hết hạn
func (cs *CacheService) CleanupExpired() int {
	removed := 0
	for _, key := range cs.cache.Keys() {
		if entry, ok := cs.cache.Peek(key); ok && cs.isExpired(entry) {
			cs.cache.Remove(key)
			removed++
		}
	}
	return removed
}

// StartCleanupWorker chạy CleanupExpired định kỳ cho tới khi ctx bị hủy
func (cs *CacheService) StartCleanupWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cs.CleanupExpired()
			}
		}
	}()
}

// Close không cần thiết cho in-memory cache
func (cs *CacheService) Close() error {
	return nil
}

func (cs *CacheService) isExpired(entry cacheEntry) bool {
	return cs.ttl > 0 && time.Since(entry.storedAt) > cs.ttl
}
