package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	CatalogSourceStatic = "static"
	CatalogSourceDB     = "db"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

// Environment variable names, exported for tests and tooling.
const (
	EnvAppEnv          = "STOREFRONT_APP_ENV"
	EnvPort            = "STOREFRONT_APP_PORT"
	EnvLogLevel        = "STOREFRONT_LOG_LEVEL"
	EnvLogFormat       = "STOREFRONT_LOG_FORMAT"
	EnvCatalogSource   = "STOREFRONT_CATALOG_SOURCE"
	EnvCatalogPageSize = "STOREFRONT_CATALOG_PAGE_SIZE"
	EnvDeliveryFee     = "STOREFRONT_CART_DELIVERY_FEE"
	EnvPromoRulesFile  = "STOREFRONT_PROMO_RULES_FILE"
	EnvSessionStore    = "STOREFRONT_SESSION_STORE"
	EnvSessionTTL      = "STOREFRONT_SESSION_TTL"
	EnvDBDriver        = "STOREFRONT_DB_DRIVER"
	EnvDBDSN           = "STOREFRONT_DB_DSN"
	EnvRedisURL        = "STOREFRONT_REDIS_URL"
	EnvAutoMigrate     = "STOREFRONT_AUTO_MIGRATE"
	EnvCORSOrigins     = "STOREFRONT_CORS_ORIGINS"
	EnvSessionIPLimit  = "STOREFRONT_RATE_LIMIT_SESSION_IP"
)

type Config struct {
	App       AppConfig
	Catalog   CatalogConfig
	Cart      CartConfig
	Promo     PromoConfig
	Session   SessionConfig
	DB        DBConfig
	Redis     RedisConfig
	Migrate   MigrateConfig
	RateLimit RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks cross-field requirements envconfig cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	if _, err := c.Cart.DeliveryFeeAmount(); err != nil {
		return err
	}
	if c.Catalog.Source == CatalogSourceDB && strings.TrimSpace(c.DB.DSN) == "" {
		return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvCatalogSource, CatalogSourceDB)
	}
	if c.Session.Store == SessionStoreRedis && strings.TrimSpace(c.Redis.URL) == "" && strings.TrimSpace(c.Redis.Address) == "" {
		return fmt.Errorf("%s is required when %s=%s", EnvRedisURL, EnvSessionStore, SessionStoreRedis)
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true" validate:"required"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080" validate:"required"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"STOREFRONT_LOG_FORMAT" default:"json" validate:"oneof=json console"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	Source   string `envconfig:"STOREFRONT_CATALOG_SOURCE" default:"static" validate:"oneof=static db"`
	PageSize int    `envconfig:"STOREFRONT_CATALOG_PAGE_SIZE" default:"6" validate:"min=1,max=100"`
}

type CartConfig struct {
	DeliveryFee string `envconfig:"STOREFRONT_CART_DELIVERY_FEE" default:"5.00"`
}

// DeliveryFeeAmount parses the configured flat fee.
func (c CartConfig) DeliveryFeeAmount() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(strings.TrimSpace(c.DeliveryFee))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s: %w", EnvDeliveryFee, err)
	}
	if fee.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", EnvDeliveryFee)
	}
	return fee, nil
}

type PromoConfig struct {
	// RulesFile overrides the embedded reference rule table when set.
	RulesFile string `envconfig:"STOREFRONT_PROMO_RULES_FILE"`
}

type SessionConfig struct {
	Store string        `envconfig:"STOREFRONT_SESSION_STORE" default:"memory" validate:"oneof=memory redis"`
	TTL   time.Duration `envconfig:"STOREFRONT_SESSION_TTL" default:"2h"`
}

type DBConfig struct {
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres" validate:"oneof=postgres sqlite"`
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// RateLimitConfig throttles anonymous session creation per client IP.
type RateLimitConfig struct {
	SessionWindow  time.Duration `envconfig:"STOREFRONT_RATE_LIMIT_SESSION_WINDOW" default:"1m"`
	SessionIPLimit int           `envconfig:"STOREFRONT_RATE_LIMIT_SESSION_IP" default:"30" validate:"min=0"`
}

type MigrateConfig struct {
	AutoMigrate bool   `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
	Dir         string `envconfig:"STOREFRONT_MIGRATIONS_DIR" default:"pkg/migrate/migrations"`
}
