package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Pricing      PricingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every semantic problem in the loaded configuration at once.
func (c *Config) Validate() error {
	var err error
	switch strings.ToLower(c.DB.Driver) {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		err = multierr.Append(err, fmt.Errorf("%s must be %q or %q", EnvDBDriver, DBDriverPostgres, DBDriverSQLite))
	}
	if c.JWT.ExpirationMinutes <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvJWTExpMins))
	}
	if strings.TrimSpace(c.Pricing.CurrencySymbol) == "" {
		err = multierr.Append(err, fmt.Errorf("%s must not be blank", EnvPricingCurrencySymbol))
	}
	if c.Pricing.DecimalPrecision < 0 || c.Pricing.DecimalPrecision > MaxDecimalPrecision {
		err = multierr.Append(err, fmt.Errorf("%s must be between 0 and %d", EnvPricingDecimalPrecision, MaxDecimalPrecision))
	}
	if c.Pricing.ProductCacheTTL < 0 {
		err = multierr.Append(err, errors.New(EnvPricingProductCacheTTL+" must not be negative"))
	}
	return err
}

type AppConfig struct {
	Env          string   `envconfig:"TRADEHUB_APP_ENV" required:"true"`
	Port         string   `envconfig:"TRADEHUB_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"TRADEHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"TRADEHUB_LOG_WARN_STACK" default:"false"`
	// CORSOrigins is a comma separated allow-list.
	CORSOrigins  []string `envconfig:"TRADEHUB_CORS_ALLOWED_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TRADEHUB_DB_DSN"`
	Driver string `envconfig:"TRADEHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TRADEHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"TRADEHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TRADEHUB_DB_USER"`
	LegacyPassword string `envconfig:"TRADEHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"TRADEHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"TRADEHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TRADEHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TRADEHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TRADEHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TRADEHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

// RedisConfig is optional; an empty URL and address disables caching.
type RedisConfig struct {
	URL          string        `envconfig:"TRADEHUB_REDIS_URL"`
	Address      string        `envconfig:"TRADEHUB_REDIS_ADDR"`
	Password     string        `envconfig:"TRADEHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"TRADEHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TRADEHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TRADEHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TRADEHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TRADEHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TRADEHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"TRADEHUB_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TRADEHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TRADEHUB_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TRADEHUB_AUTO_MIGRATE" default:"false"`
}

type PricingConfig struct {
	CurrencySymbol   string        `envconfig:"TRADEHUB_PRICING_CURRENCY_SYMBOL" default:"$"`
	DecimalPrecision int32         `envconfig:"TRADEHUB_PRICING_DECIMAL_PRECISION" default:"2"`
	ProductCacheTTL  time.Duration `envconfig:"TRADEHUB_PRICING_PRODUCT_CACHE_TTL" default:"0s"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
