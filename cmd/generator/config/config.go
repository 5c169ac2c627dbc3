package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	// StorageDriverPostgres stores Google product records in Postgres.
	StorageDriverPostgres = "postgres"
	// StorageDriverSQLite stores Google product records in embedded SQLite database.
	StorageDriverSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string        `env:"DATABASE_URL"`
	StorageDriver string        `env:"STORAGE_DRIVER" envDefault:"postgres"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"google-feed.db"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:":8080"`
	APIKey        string        `env:"API_KEY"`
	CatalogURL    string        `env:"CATALOG_URL,notEmpty"`
	PublicURL     string        `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	ExportDir     string        `env:"EXPORT_DIR" envDefault:"files/exportimport"`
	ExportURLPath string        `env:"EXPORT_URL_PATH" envDefault:"files/exportimport"`

	Feed     Feed
	Redis    Redis
	RabbitMQ RabbitMQ
}

// Feed holds feed generation configuration.
type Feed struct {
	StoreIDs    []int  `env:"FEED_STORE_IDS" envDefault:"1" envSeparator:","`
	Parallelism int    `env:"FEED_PARALLELISM" envDefault:"1"`
	Schedule    string `env:"FEED_SCHEDULE"`
	Verify      bool   `env:"FEED_VERIFY" envDefault:"false"`
	LanguageID  int    `env:"FEED_LANGUAGE_ID" envDefault:"0"`

	CurrencyID                 int    `env:"FEED_CURRENCY_ID" envDefault:"0"`
	DefaultGoogleCategory      string `env:"FEED_DEFAULT_GOOGLE_CATEGORY"`
	ProductPictureSize         int    `env:"FEED_PRODUCT_PICTURE_SIZE" envDefault:"125"`
	PassShippingInfoWeight     bool   `env:"FEED_PASS_SHIPPING_INFO_WEIGHT" envDefault:"false"`
	PassShippingInfoDimensions bool   `env:"FEED_PASS_SHIPPING_INFO_DIMENSIONS" envDefault:"false"`
	PricesConsiderPromotions   bool   `env:"FEED_PRICES_CONSIDER_PROMOTIONS" envDefault:"false"`
	StaticFileName             string `env:"FEED_STATIC_FILE_NAME"`
	ExpirationNumberOfDays     int    `env:"FEED_EXPIRATION_NUMBER_OF_DAYS" envDefault:"28"`
}

// Redis holds Redis configuration of distributed run lock.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	LockTTL  time.Duration `env:"LOCK_TTL" envDefault:"30m"`
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL              string `env:"RABBITMQ_URL"`
	Exchange         string `env:"RABBITMQ_EXCHANGE" envDefault:"gfg-ex"`
	Queue            string `env:"RABBITMQ_QUEUE" envDefault:"google-feed-generator.commands"`
	RoutingKey       string `env:"RABBITMQ_ROUTING_KEY" envDefault:"google-feed-generator.generate"`
	ResultRoutingKey string `env:"RABBITMQ_RESULT_ROUTING_KEY" envDefault:"google-feed-generator.generated"`
}

// Load reads optional .env file and parses configuration from environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("can't load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("can't parse env variables: %w", err)
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	return cfg, nil
}

// FeedSettings returns feed settings shared by all stores.
func (c Config) FeedSettings() models.FeedSettings {
	return models.FeedSettings{
		CurrencyID:                 c.Feed.CurrencyID,
		DefaultGoogleCategory:      c.Feed.DefaultGoogleCategory,
		ProductPictureSize:         c.Feed.ProductPictureSize,
		PassShippingInfoWeight:     c.Feed.PassShippingInfoWeight,
		PassShippingInfoDimensions: c.Feed.PassShippingInfoDimensions,
		PricesConsiderPromotions:   c.Feed.PricesConsiderPromotions,
		StaticFileName:             c.Feed.StaticFileName,
		ExpirationNumberOfDays:     c.Feed.ExpirationNumberOfDays,
	}
}

// Logger returns logger writing to stderr at configured level.
func (c Config) Logger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("can't parse log level: %w", err)
	}

	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger(), nil
}
