package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/order-parser/app/config"
	"github.com/order-parser/app/controllers"
	"github.com/order-parser/app/services"
	"github.com/order-parser/internal/catalog"
	"github.com/order-parser/internal/lexicon"
	"github.com/order-parser/internal/parser"
	"github.com/order-parser/routes"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ./config/app.yaml)")
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Cannot load config: ", err)
	}

	// 2. Khởi tạo logger
	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting Order Parser Service",
		zap.String("env", cfg.App.Env),
		zap.String("cache_backend", cfg.Cache.Backend))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Lexicon + parser
	lex := lexicon.Default()
	orderParser := parser.NewOrderParser(lex, logger)
	logger.Info("Lexicon loaded", zap.String("version", lex.Version()), zap.Int("products", lex.Len()))

	// 4. MongoDB (tùy chọn)
	var mongoDB *mongo.Database
	if cfg.Mongo.Enabled {
		mongoDB, err = initMongoDB(ctx, cfg.Mongo, logger)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
				logger.Error("Error disconnecting MongoDB", zap.Error(err))
			}
		}()
	}

	// 5. Cache
	cacheService, err := initCache(ctx, cfg, mongoDB, lex.Version(), logger)
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}
	if cacheService != nil {
		defer cacheService.Close()
	}

	// 6. Review queue
	var reviewService *services.ReviewService
	var recorder services.ReviewRecorder
	var reviews controllers.ReviewManager
	if mongoDB != nil {
		reviewService = services.NewReviewService(mongoDB, lex, logger)
		if err := reviewService.EnsureIndexes(ctx); err != nil {
			logger.Warn("Failed to create review indexes", zap.Error(err))
		}
		recorder = reviewService
		reviews = reviewService
	}

	// 7. Catalog (Meilisearch, tùy chọn)
	var resolver services.CatalogResolver
	if cfg.Meilisearch.Enabled {
		searcher, err := catalog.NewSearcher(catalog.SearchConfig{
			Host:      cfg.Meilisearch.URL,
			APIKey:    cfg.Meilisearch.APIKey,
			IndexName: cfg.Meilisearch.Index,
			Limit:     int64(cfg.Meilisearch.Limit),
		}, logger)
		if err != nil {
			logger.Warn("Meilisearch unavailable, catalog lookup disabled", zap.Error(err))
		} else {
			resolver = searcher
		}
	}

	// 8. Services + controllers
	orderService := services.NewOrderService(orderParser, cacheService, resolver, recorder, services.Limits{
		MaxUtteranceBytes: cfg.Parser.MaxUtteranceBytes,
		MaxBatchSize:      cfg.Parser.MaxBatchSize,
	}, logger)

	orderController := controllers.NewOrderController(orderService, logger)
	adminController := controllers.NewAdminController(orderService, reviews, cacheService, logger)

	// 9. Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, orderController, adminController, logger)

	// 10. Khởi động server
	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Order Parser Service starting", zap.String("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

// initLogger khởi tạo structured logger
func initLogger(cfg *config.Config) *zap.Logger {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger: ", err)
	}
	return logger
}

// initMongoDB kết nối MongoDB và ping thử
func initMongoDB(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	logger.Info("Connected to MongoDB", zap.String("database", cfg.Database))
	return client.Database(cfg.Database), nil
}

// initCache chọn backend cache theo cấu hình. Trả về nil khi backend là none.
func initCache(ctx context.Context, cfg *config.Config, db *mongo.Database, lexiconVersion string, logger *zap.Logger) (services.ICacheService, error) {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return nil, nil

	case config.CacheMemory:
		memory, err := services.NewCacheService(cfg.Cache.L1Size, cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		if cfg.Cache.CleanupInterval > 0 {
			memory.StartCleanupWorker(ctx, cfg.Cache.CleanupInterval)
		}
		return memory, nil

	case config.CacheRedis:
		redisCache, err := services.NewRedisCacheService(cfg.Redis.URL, cfg.Cache.TTL, logger)
		if err != nil {
			return nil, err
		}
		return redisCache, nil

	case config.CacheMongo, config.CacheHybrid:
		mongoCache, err := services.NewMongoCacheService(db, cfg.Cache.L1Size, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Cache.WarmUp > 0 {
			if err := mongoCache.WarmUp(ctx, lexiconVersion, cfg.Cache.WarmUp); err != nil {
				logger.Warn("Failed to warm up cache", zap.Error(err))
			}
		}
		if cfg.Cache.Backend == config.CacheMongo {
			return mongoCache, nil
		}

		redisCache, err := services.NewRedisCacheService(cfg.Redis.URL, cfg.Cache.TTL, logger)
		if err != nil {
			return nil, err
		}
		return services.NewHybridCacheService(redisCache, mongoCache, logger), nil
	}
	return nil, errors.New("unknown cache backend: " + cfg.Cache.Backend)
}
