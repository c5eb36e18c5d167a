package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/order-parser/app/models"
	"github.com/order-parser/internal/lexicon"
	"github.com/order-parser/internal/normalizer"
)

// Collections MongoDB của hàng đợi review
const (
	ReviewCollection       = "order_reviews"
	LearnedAliasCollection = "learned_aliases"
)

var (
	// ErrReviewNotFound không có review với id đã cho
	ErrReviewNotFound = errors.New("review không tồn tại")
	// ErrReviewCompleted review đã được xử lý
	ErrReviewCompleted = errors.New("review đã được xử lý")
	// ErrUnknownProduct tên sản phẩm không có trong lexicon
	ErrUnknownProduct = errors.New("sản phẩm không có trong lexicon")
)

// DatabaseStats thống kê database
type DatabaseStats struct {
	ParseCache     int64 `json:"parse_cache"`
	PendingReviews int64 `json:"pending_reviews"`
	LearnedAliases int64 `json:"learned_aliases"`
}

// SystemStats thống kê hệ thống
type SystemStats struct {
	Uptime        string                 `json:"uptime"`
	MemoryUsage   map[string]interface{} `json:"memory_usage"`
	DatabaseStats *DatabaseStats         `json:"database_stats,omitempty"`
	Cache         *CacheStats            `json:"cache,omitempty"`
}

// ReviewService quản lý hàng đợi review và alias học được
type ReviewService struct {
	db      *mongo.Database
	reviews *mongo.Collection
	aliases *mongo.Collection
	lex     *lexicon.Lexicon
	logger  *zap.Logger
}

// NewReviewService tạo mới ReviewService
func NewReviewService(db *mongo.Database, lex *lexicon.Lexicon, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		db:      db,
		reviews: db.Collection(ReviewCollection),
		aliases: db.Collection(LearnedAliasCollection),
		lex:     lex,
		logger:  logger,
	}
}

// EnsureIndexes tạo indexes cho hai collection
func (rs *ReviewService) EnsureIndexes(ctx context.Context) error {
	_, err := rs.reviews.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "status", Value: 1}, bson.E{Key: "created_at", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "utterance", Value: 1}, bson.E{Key: "lexicon_version", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("lỗi tạo indexes %s: %w", ReviewCollection, err)
	}

	_, err = rs.aliases.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{bson.E{Key: "alias", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("lỗi tạo indexes %s: %w", LearnedAliasCollection, err)
	}
	return nil
}

// Record lưu review đang chờ. Một câu chỉ có một review pending cho mỗi phiên bản lexicon.
func (rs *ReviewService) Record(ctx context.Context, review *models.ParseReview) error {
	filter := bson.M{
		"utterance":       review.Utterance,
		"lexicon_version": review.LexiconVersion,
		"status":          models.ReviewStatusPending,
	}
	update := bson.M{"$setOnInsert": bson.M{
		"fingerprint": review.Fingerprint,
		"guesses":     review.Guesses,
		"created_at":  review.CreatedAt,
	}}

	if _, err := rs.reviews.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("lỗi lưu review: %w", err)
	}
	rs.logger.Debug("Đã ghi review", zap.String("utterance", review.Utterance))
	return nil
}

// ListPending các review đang chờ, cũ nhất trước
func (rs *ReviewService) ListPending(ctx context.Context, limit int) ([]models.ParseReview, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := rs.reviews.Find(ctx, bson.M{"status": models.ReviewStatusPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("lỗi query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.ParseReview{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("lỗi decode reviews: %w", err)
	}
	return reviews, nil
}

// Resolve xử lý một review. canonicalName rỗng nghĩa là từ chối;
// ngược lại tên phải có trong lexicon và câu được ghi thành learned alias.
func (rs *ReviewService) Resolve(ctx context.Context, id, canonicalName, reviewerID string) (*models.ParseReview, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrReviewNotFound, id)
	}

	canonicalName = strings.Join(normalizer.Tokenize(canonicalName), " ")
	if canonicalName != "" && !rs.lex.Has(canonicalName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProduct, canonicalName)
	}

	var review models.ParseReview
	if err := rs.reviews.FindOne(ctx, bson.M{"_id": oid}).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrReviewNotFound, id)
		}
		return nil, fmt.Errorf("lỗi query review: %w", err)
	}
	if !review.IsPending() {
		return nil, ErrReviewCompleted
	}

	if canonicalName == "" {
		review.Reject(reviewerID)
	} else {
		review.Approve(canonicalName, reviewerID)
	}

	update := bson.M{"$set": bson.M{
		"status":        review.Status,
		"resolved_name": review.ResolvedName,
		"reviewer_id":   review.ReviewerID,
		"reviewed_at":   review.ReviewedAt,
	}}
	// Chỉ cập nhật khi review vẫn pending, tránh hai người duyệt cùng lúc
	res, err := rs.reviews.UpdateOne(ctx, bson.M{"_id": oid, "status": models.ReviewStatusPending}, update)
	if err != nil {
		return nil, fmt.Errorf("lỗi cập nhật review: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrReviewCompleted
	}

	if review.ResolvedName != nil {
		if err := rs.learnAlias(ctx, review.Utterance, *review.ResolvedName); err != nil {
			return nil, err
		}
	}

	rs.logger.Info("Đã xử lý review",
		zap.String("id", id),
		zap.String("status", review.Status),
		zap.String("reviewer_id", reviewerID))
	return &review, nil
}

func (rs *ReviewService) learnAlias(ctx context.Context, utterance, canonicalName string) error {
	alias := strings.Join(normalizer.Tokenize(utterance), " ")
	if alias == "" {
		return nil
	}
	learned := models.NewLearnedAlias(alias, canonicalName, rs.lex.Version(), models.SourceManual)

	update := bson.M{
		"$set": bson.M{
			"canonical_name":  learned.CanonicalName,
			"lexicon_version": learned.LexiconVersion,
			"confidence":      learned.Confidence,
			"source":          learned.Source,
			"last_used":       learned.LastUsed,
		},
		"$setOnInsert": bson.M{"created_at": learned.CreatedAt},
		"$inc":         bson.M{"usage_count": 1},
	}
	_, err := rs.aliases.UpdateOne(ctx, bson.M{"alias": alias}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("lỗi lưu learned alias: %w", err)
	}
	return nil
}

// LearnedSynonyms gom learned aliases theo tên chuẩn, dùng làm synonyms cho catalog
func (rs *ReviewService) LearnedSynonyms(ctx context.Context) (map[string][]string, error) {
	cursor, err := rs.aliases.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("lỗi lấy learned_aliases: %w", err)
	}
	defer cursor.Close(ctx)

	synonyms := make(map[string][]string)
	for cursor.Next(ctx) {
		var alias models.LearnedAlias
		if err := cursor.Decode(&alias); err != nil {
			rs.logger.Warn("Lỗi decode learned alias", zap.Error(err))
			continue
		}
		if !rs.lex.Has(alias.CanonicalName) {
			continue
		}
		synonyms[alias.CanonicalName] = append(synonyms[alias.CanonicalName], alias.Alias)
	}
	return synonyms, cursor.Err()
}

// DatabaseStats đếm bản ghi của các collection
func (rs *ReviewService) DatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	stats := &DatabaseStats{}

	count, err := rs.db.Collection(ParseCacheCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	stats.ParseCache = count

	count, err = rs.reviews.CountDocuments(ctx, bson.M{"status": models.ReviewStatusPending})
	if err != nil {
		return nil, err
	}
	stats.PendingReviews = count

	count, err = rs.aliases.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	stats.LearnedAliases = count

	return stats, nil
}

// MemoryUsage thống kê bộ nhớ của process
func MemoryUsage() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return map[string]interface{}{
		"alloc_mb":       bToMb(m.Alloc),
		"total_alloc_mb": bToMb(m.TotalAlloc),
		"sys_mb":         bToMb(m.Sys),
		"num_gc":         m.NumGC,
	}
}

// FormatUptime làm tròn uptime đến giây
func FormatUptime(d time.Duration) string {
	return d.Round(time.Second).String()
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
