package config

const EnvPrefix = "TRADEHUB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	MaxDecimalPrecision = 8
)

const (
	EnvAppEnv = "TRADEHUB_APP_ENV"
	EnvPort   = "TRADEHUB_APP_PORT"
	EnvLogLvl = "TRADEHUB_LOG_LEVEL"
	EnvDBDSN  = "TRADEHUB_DB_DSN"
	EnvDBHost = "TRADEHUB_DB_HOST"
	EnvDBUser = "TRADEHUB_DB_USER"
	EnvDBName = "TRADEHUB_DB_NAME"
	EnvDBPass = "TRADEHUB_DB_PASSWORD"
	EnvDBPort = "TRADEHUB_DB_PORT"

	EnvDBDriver = "TRADEHUB_DB_DRIVER"

	EnvRedisURL = "TRADEHUB_REDIS_URL"

	EnvJWTSecret  = "TRADEHUB_JWT_SECRET"
	EnvJWTIssuer  = "TRADEHUB_JWT_ISSUER"
	EnvJWTExpMins = "TRADEHUB_JWT_EXPIRATION_MINUTES"

	EnvPricingCurrencySymbol   = "TRADEHUB_PRICING_CURRENCY_SYMBOL"
	EnvPricingDecimalPrecision = "TRADEHUB_PRICING_DECIMAL_PRECISION"
	EnvPricingProductCacheTTL  = "TRADEHUB_PRICING_PRODUCT_CACHE_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
