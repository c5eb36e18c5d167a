// Package routes khai báo routing cho Order Parser Service.
//
// Cấu trúc:
//   - api.go: API routes (/v1/*), health routes và middleware
//   - web.go: Web routes (/, /docs, /status)
//
// Sử dụng:
//
//	routes.SetupAllRoutes(router, orderController, adminController, logger)
package routes
