package services

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
	"time"

	"github.com/order-parser/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService interface định nghĩa các method cần thiết cho cache
type ICacheService interface {
	// Get lấy kết quả parse từ cache
	Get(ctx context.Context, key string) (*models.OrderResult, bool, error)

	// Set lưu kết quả parse vào cache
	Set(ctx context.Context, key string, result *models.OrderResult) error

	// Delete xóa kết quả khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa tất cả cache
	Clear(ctx context.Context) error

	// InvalidateByLexiconVersion xóa mọi kết quả không thuộc phiên bản lexicon hiện tại
	InvalidateByLexiconVersion(ctx context.Context, lexiconVersion string) error

	// GetStats lấy thống kê cache
	GetStats(ctx context.Context) (*CacheStats, error)

	// Exists kiểm tra key có tồn tại không
	Exists(ctx context.Context, key string) (bool, error)

	// GetTTL lấy TTL còn lại của key
	GetTTL(ctx context.Context, key string) (time.Duration, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}

// CacheKey sinh key từ các câu gốc và phiên bản lexicon.
// Kết quả parse chỉ phụ thuộc hai thứ này nên key trùng thì kết quả trùng.
// Mỗi phần được ghi kèm độ dài nên câu chứa NUL không giả được ranh giới câu.
func CacheKey(utterances []string, lexiconVersion string) string {
	h := sha256.New()
	writeField(h, lexiconVersion)
	binary.Write(h, binary.BigEndian, uint64(len(utterances)))
	for _, u := range utterances {
		writeField(h, u)
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil))
}

func writeField(w io.Writer, s string) {
	binary.Write(w, binary.BigEndian, uint64(len(s)))
	io.WriteString(w, s)
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
