package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
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
	catalogPath := flag.String("catalog", "", "catalog YAML file (default: embedded catalog)")
	withLearned := flag.Bool("learned", true, "merge learned aliases from MongoDB into synonyms")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Không đọc được cấu hình: ", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal("Cannot initialize logger: ", err)
	}
	defer logger.Sync()

	lex := lexicon.Default()

	products, err := loadProducts(*catalogPath, lex)
	if err != nil {
		logger.Fatal("Lỗi đọc catalog", zap.Error(err))
	}
	fmt.Printf("Đã đọc %d SKU\n", len(products))

	searcher, err := catalog.NewSearcher(catalog.SearchConfig{
		Host:      cfg.Meilisearch.URL,
		APIKey:    cfg.Meilisearch.APIKey,
		IndexName: cfg.Meilisearch.Index,
	}, logger)
	if err != nil {
		logger.Fatal("Không thể kết nối Meilisearch", zap.Error(err))
	}

	var learned map[string][]string
	if *withLearned && cfg.Mongo.Enabled {
		learned, err = learnedSynonyms(cfg.Mongo, lex, logger)
		if err != nil {
			logger.Warn("Bỏ qua learned aliases", zap.Error(err))
		}
	}

	fmt.Println("Đang cấu hình Meilisearch index settings...")
	if err := searcher.BuildIndexes(lex, learned); err != nil {
		logger.Fatal("Lỗi cấu hình index", zap.Error(err))
	}

	fmt.Println("Đang seed dữ liệu vào Meilisearch...")
	if err := searcher.SeedData(products, lex.Version()); err != nil {
		logger.Fatal("Lỗi seed catalog", zap.Error(err))
	}

	fmt.Printf("Hoàn thành! Đã seed %d documents vào index %s\n", len(products), cfg.Meilisearch.Index)
}

func loadProducts(path string, lex *lexicon.Lexicon) ([]catalog.Product, error) {
	if path == "" {
		return catalog.DefaultProducts(lex)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return catalog.LoadProducts(data, lex)
}

func learnedSynonyms(cfg config.MongoConfig, lex *lexicon.Lexicon, logger *zap.Logger) (map[string][]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, err
	}
	defer client.Disconnect(context.Background())

	reviews := services.NewReviewService(client.Database(cfg.Database), lex, logger)
	synonyms, err := reviews.LearnedSynonyms(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Đã đọc learned aliases cho %d sản phẩm\n", len(synonyms))
	return synonyms, nil
}
