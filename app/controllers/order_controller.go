package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/order-parser/app/requests"
	"github.com/order-parser/app/responses"
	"github.com/order-parser/app/services"
)

// Version phiên bản service
const Version = "1.0.0"

// OrderController controller xử lý các request parse đơn hàng
type OrderController struct {
	orderService *services.OrderService
	logger       *zap.Logger
}

// NewOrderController tạo mới OrderController
func NewOrderController(orderService *services.OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{
		orderService: orderService,
		logger:       logger,
	}
}

// ParseOrder parse một câu
func (oc *OrderController) ParseOrder(c *gin.Context) {
	var req requests.ParseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Request không hợp lệ: "+err.Error(), nil)
		return
	}

	outcome, err := oc.orderService.Parse(c.Request.Context(), req.Text, serviceOptions(req.Options))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toParseResponse(outcome))
}

// BatchParse parse nhiều câu thành một đơn
func (oc *OrderController) BatchParse(c *gin.Context) {
	var req requests.BatchParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Request không hợp lệ: "+err.Error(), nil)
		return
	}

	outcome, err := oc.orderService.ParseBatch(c.Request.Context(), req.Texts, serviceOptions(req.Options))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toParseResponse(outcome))
}

// Lexicon liệt kê sản phẩm và alias
func (oc *OrderController) Lexicon(c *gin.Context) {
	lex := oc.orderService.Lexicon()
	products := make([]responses.LexiconProduct, 0, lex.Len())
	for _, e := range lex.Entries() {
		products = append(products, responses.LexiconProduct{Name: e.Name, Aliases: e.AliasStrings()})
	}
	c.JSON(http.StatusOK, responses.LexiconResponse{
		Version:  lex.Version(),
		Total:    len(products),
		Products: products,
	})
}

// HealthCheck kiểm tra sức khỏe service
func (oc *OrderController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    services.FormatUptime(oc.orderService.Uptime()),
		Version:   Version,
		Services: map[string]string{
			"order_parser": "healthy",
			"lexicon":      oc.orderService.Lexicon().Version(),
		},
	})
}

func serviceOptions(o requests.ParseOptions) services.ParseOptions {
	return services.ParseOptions{UseCache: o.UseCache, ResolveCatalog: o.ResolveCatalog}
}

func toParseResponse(outcome *services.ParseOutcome) responses.ParseOrderResponse {
	return responses.ParseOrderResponse{
		Result:           outcome.Result,
		CacheHit:         outcome.CacheHit,
		ProcessingTimeMs: outcome.Duration.Milliseconds(),
		LexiconVersion:   outcome.Result.LexiconVersion,
		Warnings:         outcome.Warnings,
	}
}
