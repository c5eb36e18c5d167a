package responses

import (
	"github.com/order-parser/app/models"
	"github.com/order-parser/app/services"
)

// ParseOrderResponse response parse đơn hàng
type ParseOrderResponse struct {
	Result           *models.OrderResult `json:"result"`
	CacheHit         bool                `json:"cache_hit"`
	ProcessingTimeMs int64               `json:"processing_time_ms"`
	LexiconVersion   string              `json:"lexicon_version"`
	Warnings         []string            `json:"warnings,omitempty"`
}

// LexiconProduct một sản phẩm trong lexicon
type LexiconProduct struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

// LexiconResponse danh sách sản phẩm theo thứ tự khai báo
type LexiconResponse struct {
	Version  string           `json:"version"`
	Total    int              `json:"total"`
	Products []LexiconProduct `json:"products"`
}

// ReviewListResponse response danh sách review
type ReviewListResponse struct {
	Reviews []models.ParseReview `json:"reviews"`
	Total   int                  `json:"total"`
	Limit   int                  `json:"limit"`
}

// ReviewActionResponse response thao tác review
type ReviewActionResponse struct {
	Success bool                `json:"success"`
	Review  *models.ParseReview `json:"review"`
	Message string              `json:"message"`
}

// AdminStatsResponse response thống kê admin
type AdminStatsResponse struct {
	LexiconVersion string                `json:"lexicon_version"`
	Products       int                   `json:"products"`
	System         *services.SystemStats `json:"system"`
	LastUpdated    string                `json:"last_updated"`
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error     string      `json:"error"`                // Mã lỗi
	Message   string      `json:"message"`              // Thông báo lỗi
	Details   interface{} `json:"details,omitempty"`    // Chi tiết lỗi
	Timestamp string      `json:"timestamp"`            // Thời gian xảy ra lỗi
	RequestID string      `json:"request_id,omitempty"` // ID của request
}

// SuccessResponse response thành công
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// HealthCheckResponse response kiểm tra sức khỏe
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}
