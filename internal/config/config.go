// Package config loads runtime configuration from ECOCAFE_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store selects the persistence backend.
type Store string

const (
	StoreSQLite   Store = "sqlite"
	StoreMongo    Store = "mongo"
	StorePostgres Store = "postgres"
)

type Config struct {
	Store       Store  `env:"ECOCAFE_STORE" envDefault:"sqlite"`
	DBPath      string `env:"ECOCAFE_DB"`
	MongoURI    string `env:"ECOCAFE_MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB     string `env:"ECOCAFE_MONGO_DB" envDefault:"ecocafe"`
	PostgresURL string `env:"ECOCAFE_POSTGRES_URL" envDefault:"postgres://localhost:5432/ecocafe?sslmode=disable"`

	RedisURL string        `env:"ECOCAFE_REDIS_URL"`
	CacheTTL time.Duration `env:"ECOCAFE_CACHE_TTL" envDefault:"5m"`

	KakaoRESTKey    string        `env:"ECOCAFE_KAKAO_REST_KEY"`
	KakaoEndpoint   string        `env:"ECOCAFE_KAKAO_ENDPOINT" envDefault:"https://dapi.kakao.com"`
	KakaoMaxRetries int           `env:"ECOCAFE_KAKAO_MAX_RETRIES" envDefault:"1"`
	SearchTimeout   time.Duration `env:"ECOCAFE_SEARCH_TIMEOUT" envDefault:"5s"`

	// Geo is a fixed device position "lat,lng"; empty means none.
	Geo string `env:"ECOCAFE_GEO"`

	HTTPAddr    string `env:"ECOCAFE_HTTP_ADDR" envDefault:":8080"`
	CatalogPath string `env:"ECOCAFE_CATALOG"`
	LogUseCases bool   `env:"ECOCAFE_LOG_USE_CASES" envDefault:"false"`
}

// Load parses the environment and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = Store(strings.ToLower(strings.TrimSpace(string(cfg.Store))))
	switch cfg.Store {
	case StoreSQLite, StoreMongo, StorePostgres:
	default:
		return Config{}, fmt.Errorf("ECOCAFE_STORE: unknown store %q (want sqlite, mongo or postgres)", cfg.Store)
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".ecocafe", "ecocafe.db")
	}
	if cfg.CacheTTL <= 0 {
		return Config{}, fmt.Errorf("ECOCAFE_CACHE_TTL must be positive, got %s", cfg.CacheTTL)
	}
	return cfg, nil
}

// CacheEnabled reports whether a Redis URL is configured.
func (c Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
