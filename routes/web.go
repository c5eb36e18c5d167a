package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/order-parser/app/controllers"
	"github.com/order-parser/app/services"
)

var startedAt = time.Now()

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "Order Parser Service",
				"version": controllers.Version,
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"api": "Order Parser API v1",
				"endpoints": map[string]string{
					"parse":          "POST /v1/orders/parse",
					"parse_batch":    "POST /v1/orders/parse-batch",
					"lexicon":        "GET /v1/lexicon",
					"reviews":        "GET /v1/admin/reviews",
					"resolve_review": "POST /v1/admin/reviews/:id/resolve",
					"cache_clear":    "POST /v1/admin/cache/clear",
					"cache_inval":    "POST /v1/admin/cache/invalidate",
					"stats":          "GET /v1/admin/stats",
					"health":         "GET /v1/health",
				},
			})
		})

		web.GET("/status", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "running",
				"service": "Order Parser",
				"uptime":  services.FormatUptime(time.Since(startedAt)),
			})
		})
	}
}
