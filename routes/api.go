package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/order-parser/app/controllers"
	"github.com/order-parser/helpers/utils"
)

// RequestIDHeader header mang request id
const RequestIDHeader = "X-Request-ID"

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, orderController *controllers.OrderController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.POST("/parse", orderController.ParseOrder)
			orders.POST("/parse-batch", orderController.BatchParse)
		}

		v1.GET("/lexicon", orderController.Lexicon)

		admin := v1.Group("/admin")
		{
			admin.GET("/reviews", adminController.ListReviews)
			admin.POST("/reviews/:id/resolve", adminController.ResolveReview)
			admin.POST("/cache/clear", adminController.ClearCache)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.GET("/stats", adminController.GetStats)
		}

		v1.GET("/health", orderController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, orderController *controllers.OrderController) {
	router.GET("/health", orderController.HealthCheck)
	router.GET("/ready", orderController.HealthCheck)
	router.GET("/live", orderController.HealthCheck)
}

// SetupAllRoutes thiết lập middleware và tất cả routes
func SetupAllRoutes(router *gin.Engine, orderController *controllers.OrderController, adminController *controllers.AdminController, logger *zap.Logger) {
	setupMiddleware(router, logger)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, orderController)
	SetupAPIRoutes(router, orderController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

func setupMiddleware(router *gin.Engine, logger *zap.Logger) {
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
}

// RequestID gắn request id vào context và header response. Giữ lại id client gửi lên.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = utils.GenerateUUID()
		}
		c.Set(controllers.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger log mỗi request bằng zap
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString(controllers.RequestIDKey)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("http.request", fields...)
			return
		}
		logger.Info("http.request", fields...)
	}
}
