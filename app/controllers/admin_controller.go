package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/order-parser/app/models"
	"github.com/order-parser/app/requests"
	"github.com/order-parser/app/responses"
	"github.com/order-parser/app/services"
)

// ReviewManager thao tác với hàng đợi review
type ReviewManager interface {
	ListPending(ctx context.Context, limit int) ([]models.ParseReview, error)
	Resolve(ctx context.Context, id, canonicalName, reviewerID string) (*models.ParseReview, error)
	DatabaseStats(ctx context.Context) (*services.DatabaseStats, error)
}

// AdminController controller xử lý các request admin
type AdminController struct {
	orderService *services.OrderService
	reviews      ReviewManager
	cacheService services.ICacheService
	logger       *zap.Logger
}

// NewAdminController tạo mới AdminController. reviews và cacheService có thể nil.
func NewAdminController(orderService *services.OrderService, reviews ReviewManager, cacheService services.ICacheService, logger *zap.Logger) *AdminController {
	return &AdminController{
		orderService: orderService,
		reviews:      reviews,
		cacheService: cacheService,
		logger:       logger,
	}
}

// ListReviews danh sách review đang chờ
func (ac *AdminController) ListReviews(c *gin.Context) {
	if ac.reviews == nil {
		respondError(c, http.StatusServiceUnavailable, "REVIEWS_DISABLED", "Hàng đợi review chưa được bật", nil)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 500 {
		respondError(c, http.StatusBadRequest, "INVALID_LIMIT", "limit phải trong khoảng 1-500", nil)
		return
	}

	reviews, err := ac.reviews.ListPending(c.Request.Context(), limit)
	if err != nil {
		ac.logger.Error("Lỗi lấy danh sách review", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.ReviewListResponse{
		Reviews: reviews,
		Total:   len(reviews),
		Limit:   limit,
	})
}

// ResolveReview duyệt hoặc từ chối một review
func (ac *AdminController) ResolveReview(c *gin.Context) {
	if ac.reviews == nil {
		respondError(c, http.StatusServiceUnavailable, "REVIEWS_DISABLED", "Hàng đợi review chưa được bật", nil)
		return
	}

	var req requests.ResolveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Request không hợp lệ: "+err.Error(), nil)
		return
	}

	review, err := ac.reviews.Resolve(c.Request.Context(), c.Param("id"), req.CanonicalName, req.ReviewerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.ReviewActionResponse{
		Success: true,
		Review:  review,
		Message: "Review đã được xử lý: " + review.Status,
	})
}

// ClearCache xóa toàn bộ cache
func (ac *AdminController) ClearCache(c *gin.Context) {
	if ac.cacheService == nil {
		respondError(c, http.StatusServiceUnavailable, "CACHE_DISABLED", "Cache chưa được bật", nil)
		return
	}
	if err := ac.cacheService.Clear(c.Request.Context()); err != nil {
		ac.logger.Error("Lỗi clear cache", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "Đã xóa cache",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// InvalidateCache xóa cache của các phiên bản lexicon cũ
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	if ac.cacheService == nil {
		respondError(c, http.StatusServiceUnavailable, "CACHE_DISABLED", "Cache chưa được bật", nil)
		return
	}
	version := ac.orderService.Lexicon().Version()
	if err := ac.cacheService.InvalidateByLexiconVersion(c.Request.Context(), version); err != nil {
		ac.logger.Error("Lỗi invalidate cache", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "Đã invalidate cache",
		Data:      gin.H{"lexicon_version": version},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// GetStats thống kê hệ thống
func (ac *AdminController) GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	system := &services.SystemStats{
		Uptime:      services.FormatUptime(ac.orderService.Uptime()),
		MemoryUsage: services.MemoryUsage(),
	}

	if ac.cacheService != nil {
		stats, err := ac.cacheService.GetStats(ctx)
		if err != nil {
			ac.logger.Warn("Không lấy được cache stats", zap.Error(err))
		}
		system.Cache = stats
	}
	if ac.reviews != nil {
		stats, err := ac.reviews.DatabaseStats(ctx)
		if err != nil {
			ac.logger.Warn("Không lấy được database stats", zap.Error(err))
		}
		system.DatabaseStats = stats
	}

	lex := ac.orderService.Lexicon()
	c.JSON(http.StatusOK, responses.AdminStatsResponse{
		LexiconVersion: lex.Version(),
		Products:       lex.Len(),
		System:         system,
		LastUpdated:    time.Now().Format(time.RFC3339),
	})
}
