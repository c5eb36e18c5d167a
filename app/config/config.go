// Package config đọc cấu hình service từ file YAML và biến môi trường qua viper.
// Biến môi trường dùng dạng viết hoa, dấu chấm thay bằng gạch dưới
// (cache.l1_size → CACHE_L1_SIZE).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Các backend cache hỗ trợ
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheMongo  = "mongo"
	CacheHybrid = "hybrid"
	CacheNone   = "none"
)

type AppConfig struct {
	Port            string        `mapstructure:"port"`
	Env             string        `mapstructure:"env"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ParserConfig struct {
	MaxUtteranceBytes int `mapstructure:"max_utterance_bytes"`
	MaxBatchSize      int `mapstructure:"max_batch_size"`
}

type CacheConfig struct {
	Backend         string        `mapstructure:"backend"`
	L1Size          int           `mapstructure:"l1_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	WarmUp          int           `mapstructure:"warm_up"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type MongoConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type MeiliConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
	Index   string `mapstructure:"index"`
	Limit   int    `mapstructure:"limit"`
}

// Config cấu hình đầy đủ của service
type Config struct {
	App         AppConfig    `mapstructure:"app"`
	Parser      ParserConfig `mapstructure:"parser"`
	Cache       CacheConfig  `mapstructure:"cache"`
	Redis       RedisConfig  `mapstructure:"redis"`
	Mongo       MongoConfig  `mapstructure:"mongo"`
	Meilisearch MeiliConfig  `mapstructure:"meilisearch"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.shutdown_timeout", "10s")

	v.SetDefault("parser.max_utterance_bytes", 2048)
	v.SetDefault("parser.max_batch_size", 50)

	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.l1_size", 10000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")
	v.SetDefault("cache.warm_up", 0)

	v.SetDefault("redis.url", "redis://localhost:6379")

	v.SetDefault("mongo.enabled", false)
	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "order_parser")

	v.SetDefault("meilisearch.enabled", false)
	v.SetDefault("meilisearch.url", "http://localhost:7700")
	v.SetDefault("meilisearch.api_key", "")
	v.SetDefault("meilisearch.index", "grocery_products")
	v.SetDefault("meilisearch.limit", 10)
}

// Load đọc cấu hình. path rỗng thì tìm app.yaml trong ./config và thư mục hiện tại;
// không có file vẫn dùng default và env.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("lỗi đọc file cấu hình: %w", err)
		}
	} else {
		v.SetConfigName("app")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("lỗi đọc file cấu hình: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("lỗi parse cấu hình: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate kiểm tra các giá trị bắt buộc và tổ hợp backend
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return errors.New("app.port không được để trống")
	}
	if c.Parser.MaxUtteranceBytes < 0 || c.Parser.MaxBatchSize < 0 {
		return errors.New("giới hạn parser không được âm")
	}
	switch c.Cache.Backend {
	case CacheMemory, CacheRedis, CacheNone:
	case CacheMongo, CacheHybrid:
		if !c.Mongo.Enabled {
			return fmt.Errorf("cache.backend=%s cần mongo.enabled", c.Cache.Backend)
		}
	default:
		return fmt.Errorf("cache.backend không hợp lệ: %q", c.Cache.Backend)
	}
	if c.Cache.L1Size <= 0 {
		return errors.New("cache.l1_size phải lớn hơn 0")
	}
	return nil
}

// IsProduction môi trường production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
