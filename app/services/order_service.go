package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/order-parser/app/models"
	"github.com/order-parser/internal/catalog"
	"github.com/order-parser/internal/lexicon"
	"github.com/order-parser/internal/parser"
)

var (
	// ErrEmptyBatch batch không có câu nào
	ErrEmptyBatch = errors.New("danh sách câu không được để trống")
	// ErrBatchTooLarge batch vượt giới hạn cấu hình
	ErrBatchTooLarge = errors.New("số câu vượt quá giới hạn")
	// ErrUtteranceTooLong một câu vượt giới hạn byte cấu hình
	ErrUtteranceTooLong = errors.New("câu vượt quá độ dài cho phép")
)

// CatalogResolver tra SKU cho một sản phẩm đã nhận diện
type CatalogResolver interface {
	Resolve(name string, unit lexicon.Unit) ([]catalog.Hit, error)
}

// ReviewRecorder ghi nhận câu cần người duyệt
type ReviewRecorder interface {
	Record(ctx context.Context, review *models.ParseReview) error
}

// ParseOptions tùy chọn parse ở tầng service
type ParseOptions struct {
	UseCache       bool
	ResolveCatalog bool
}

// ParseOutcome kết quả trả về cho controller
type ParseOutcome struct {
	Result   *models.OrderResult
	CacheHit bool
	Duration time.Duration
	Warnings []string
}

// Limits giới hạn kích thước request
type Limits struct {
	MaxUtteranceBytes int
	MaxBatchSize      int
}

// OrderService điều phối parse, cache, tra catalog và hàng đợi review
type OrderService struct {
	parser    *parser.OrderParser
	cache     ICacheService
	catalog   CatalogResolver
	reviews   ReviewRecorder
	limits    Limits
	logger    *zap.Logger
	startTime time.Time
}

// NewOrderService tạo mới OrderService. cache, catalog và reviews có thể nil.
func NewOrderService(p *parser.OrderParser, cache ICacheService, resolver CatalogResolver, reviews ReviewRecorder, limits Limits, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		parser:    p,
		cache:     cache,
		catalog:   resolver,
		reviews:   reviews,
		limits:    limits,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Lexicon lexicon đang dùng
func (s *OrderService) Lexicon() *lexicon.Lexicon {
	return s.parser.Lexicon()
}

// Parse parse một câu
func (s *OrderService) Parse(ctx context.Context, text string, opts ParseOptions) (*ParseOutcome, error) {
	return s.ParseBatch(ctx, []string{text}, opts)
}

// ParseBatch parse nhiều câu thành một kết quả gộp
func (s *OrderService) ParseBatch(ctx context.Context, texts []string, opts ParseOptions) (*ParseOutcome, error) {
	if err := s.validate(texts); err != nil {
		return nil, err
	}

	start := time.Now()
	version := s.Lexicon().Version()
	key := CacheKey(texts, version)

	outcome := &ParseOutcome{}
	if opts.UseCache && s.cache != nil {
		cached, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Lỗi đọc cache, parse lại", zap.Error(err))
		} else if found {
			result := *cached
			outcome.Result = &result
			outcome.CacheHit = true
		}
	}

	if outcome.Result == nil {
		var parsed parser.ParseResult
		if len(texts) == 1 {
			parsed = s.parser.Parse(texts[0])
		} else {
			parsed = s.parser.ParseMultiple(texts)
		}
		outcome.Result = models.NewOrderResult(texts, parsed, key, version)

		if opts.UseCache && s.cache != nil {
			stored := *outcome.Result
			if err := s.cache.Set(ctx, key, &stored); err != nil {
				s.logger.Warn("Lỗi ghi cache", zap.Error(err), zap.String("key", key))
			}
		}
		s.recordReviews(ctx, texts, outcome.Result)
	}

	if opts.ResolveCatalog {
		outcome.Warnings = s.resolveCatalog(outcome.Result)
	}

	outcome.Duration = time.Since(start)
	s.logger.Info("Parsed order",
		zap.Int("utterances", len(texts)),
		zap.Int("items", len(outcome.Result.Items)),
		zap.Int("guesses", len(outcome.Result.Guesses)),
		zap.String("status", outcome.Result.Status),
		zap.Bool("cache_hit", outcome.CacheHit),
		zap.Duration("duration", outcome.Duration))
	return outcome, nil
}

func (s *OrderService) validate(texts []string) error {
	if len(texts) == 0 {
		return ErrEmptyBatch
	}
	if s.limits.MaxBatchSize > 0 && len(texts) > s.limits.MaxBatchSize {
		return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(texts), s.limits.MaxBatchSize)
	}
	if s.limits.MaxUtteranceBytes > 0 {
		for i, t := range texts {
			if len(t) > s.limits.MaxUtteranceBytes {
				return fmt.Errorf("%w: câu %d dài %d byte", ErrUtteranceTooLong, i, len(t))
			}
		}
	}
	return nil
}

// recordReviews đưa vào hàng đợi review những câu không có item nhưng có gợi ý.
// Lỗi ghi review chỉ được log.
func (s *OrderService) recordReviews(ctx context.Context, texts []string, result *models.OrderResult) {
	if s.reviews == nil || len(result.Guesses) == 0 {
		return
	}
	for _, text := range texts {
		single := result.ParseResult
		if len(texts) > 1 {
			single = s.parser.Parse(text)
		}
		if len(single.Items) > 0 || len(single.Guesses) == 0 {
			continue
		}
		review := models.NewParseReview(text, result.Fingerprint, result.LexiconVersion, single.Guesses)
		if err := s.reviews.Record(ctx, review); err != nil {
			s.logger.Warn("Lỗi ghi review", zap.Error(err), zap.String("utterance", text))
		}
	}
}

// resolveCatalog gắn SKU cho từng item. Lỗi của từng item thành cảnh báo.
func (s *OrderService) resolveCatalog(result *models.OrderResult) []string {
	if s.catalog == nil {
		return []string{"catalog không được cấu hình"}
	}

	var warnings []string
	matches := make([]models.CatalogMatch, 0, len(result.Items))
	for _, item := range result.Items {
		hits, err := s.catalog.Resolve(item.Name, item.Unit)
		if err != nil {
			s.logger.Warn("Lỗi tra catalog", zap.Error(err), zap.String("item", item.Name))
			warnings = append(warnings, fmt.Sprintf("%s: %v", item.Name, err))
			continue
		}
		matches = append(matches, models.CatalogMatch{Item: item.Name, Hits: hits})
	}
	result.Catalog = matches
	return warnings
}

// Uptime thời gian service đã chạy
func (s *OrderService) Uptime() time.Duration {
	return time.Since(s.startTime)
}
