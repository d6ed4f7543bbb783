package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "lyvest"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Favorites FavoritesConfig
	SizeAI    SizeAIConfig
	Outbox    OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LYVEST_APP_ENV" default:"development"`
	Port         string `envconfig:"LYVEST_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LYVEST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LYVEST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig points at the remote favorites store. An empty DSN disables the
// remote store entirely; the favorites engine then runs local-only.
type DBConfig struct {
	DSN    string `envconfig:"LYVEST_DB_DSN"`
	Driver string `envconfig:"LYVEST_DB_DRIVER" default:"postgres"`

	// AutoMigrate runs goose migrations on startup in dev environments.
	AutoMigrate bool `envconfig:"LYVEST_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"LYVEST_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"LYVEST_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"LYVEST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LYVEST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d DBConfig) Enabled() bool {
	return d.DSN != ""
}

type RedisConfig struct {
	URL          string        `envconfig:"LYVEST_REDIS_URL"`
	Address      string        `envconfig:"LYVEST_REDIS_ADDR"`
	Password     string        `envconfig:"LYVEST_REDIS_PASSWORD"`
	DB           int           `envconfig:"LYVEST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LYVEST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LYVEST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LYVEST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LYVEST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LYVEST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

const (
	StorageBackendMemory = "memory"
	StorageBackendFile   = "file"
	StorageBackendRedis  = "redis"
)

// StorageConfig selects the backend behind the persistent slot adapter.
type StorageConfig struct {
	Backend string `envconfig:"LYVEST_STORAGE_BACKEND" default:"memory"`
	FileDir string `envconfig:"LYVEST_STORAGE_FILE_DIR" default:"./data"`
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case StorageBackendMemory, StorageBackendFile, StorageBackendRedis:
		return nil
	default:
		return fmt.Errorf("unknown storage backend %q", s.Backend)
	}
}

type FavoritesConfig struct {
	// ClearRemote controls whether clearing local favorites also wipes the
	// remote store. Product intent is undecided, so the observed local-only
	// behavior is the default.
	ClearRemote bool `envconfig:"LYVEST_FAVORITES_CLEAR_REMOTE" default:"false"`
}

type SizeAIConfig struct {
	Endpoint string        `envconfig:"LYVEST_SIZE_AI_ENDPOINT"`
	APIKey   string        `envconfig:"LYVEST_SIZE_AI_API_KEY"`
	Model    string        `envconfig:"LYVEST_SIZE_AI_MODEL" default:"gpt-4o-mini"`
	Timeout  time.Duration `envconfig:"LYVEST_SIZE_AI_TIMEOUT" default:"8s"`
}

func (s SizeAIConfig) Configured() bool {
	return s.Endpoint != "" && s.APIKey != ""
}

type OutboxConfig struct {
	BufferSize  int `envconfig:"LYVEST_OUTBOX_BUFFER_SIZE" default:"256"`
	MaxAttempts int `envconfig:"LYVEST_OUTBOX_MAX_ATTEMPTS" default:"3"`
}
