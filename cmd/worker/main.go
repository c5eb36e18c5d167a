// Worker đồng bộ định kỳ: xóa cache của phiên bản lexicon cũ và đẩy learned
// aliases từ hàng đợi review sang synonyms của Meilisearch.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/order-parser/app/config"
	"github.com/order-parser/app/services"
	"github.com/order-parser/internal/catalog"
	"github.com/order-parser/internal/lexicon"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	interval := flag.Duration("interval", 15*time.Minute, "sync interval")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Cannot load config: ", err)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("Cannot initialize logger: ", err)
	}
	defer logger.Sync()

	if !cfg.Mongo.Enabled {
		logger.Fatal("Worker cần mongo.enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URL))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.Mongo.Database)

	lex := lexicon.Default()
	reviews := services.NewReviewService(db, lex, logger)

	mongoCache, err := services.NewMongoCacheService(db, cfg.Cache.L1Size, logger)
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}

	var searcher *catalog.Searcher
	if cfg.Meilisearch.Enabled {
		searcher, err = catalog.NewSearcher(catalog.SearchConfig{
			Host:      cfg.Meilisearch.URL,
			APIKey:    cfg.Meilisearch.APIKey,
			IndexName: cfg.Meilisearch.Index,
		}, logger)
		if err != nil {
			logger.Warn("Meilisearch unavailable, synonym sync disabled", zap.Error(err))
			searcher = nil
		}
	}

	logger.Info("Starting Order Parser Worker",
		zap.Duration("interval", *interval),
		zap.String("lexicon_version", lex.Version()))

	w := &syncWorker{lex: lex, reviews: reviews, cache: mongoCache, searcher: searcher, logger: logger}
	w.run(ctx)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Worker exited")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

type syncWorker struct {
	lex      *lexicon.Lexicon
	reviews  *services.ReviewService
	cache    services.ICacheService
	searcher *catalog.Searcher
	logger   *zap.Logger
}

func (w *syncWorker) run(ctx context.Context) {
	start := time.Now()

	if err := w.cache.InvalidateByLexiconVersion(ctx, w.lex.Version()); err != nil {
		w.logger.Error("Lỗi invalidate cache", zap.Error(err))
	}

	if w.searcher != nil {
		learned, err := w.reviews.LearnedSynonyms(ctx)
		if err != nil {
			w.logger.Error("Lỗi đọc learned aliases", zap.Error(err))
		} else if err := w.searcher.BuildIndexes(w.lex, learned); err != nil {
			w.logger.Error("Lỗi cập nhật synonyms", zap.Error(err))
		}
	}

	stats, err := w.reviews.DatabaseStats(ctx)
	if err != nil {
		w.logger.Warn("Không lấy được database stats", zap.Error(err))
		return
	}
	w.logger.Info("Sync hoàn thành",
		zap.Duration("duration", time.Since(start)),
		zap.Int64("parse_cache", stats.ParseCache),
		zap.Int64("pending_reviews", stats.PendingReviews),
		zap.Int64("learned_aliases", stats.LearnedAliases))
}
