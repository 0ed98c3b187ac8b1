package config

// EnvPrefix scopes every environment variable consumed by the service.
const EnvPrefix = "TROS"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "TROS_APP_ENV"
	EnvPort       = "TROS_APP_PORT"
	EnvDBDSN      = "TROS_DB_DSN"
	EnvDBHost     = "TROS_DB_HOST"
	EnvDBUser     = "TROS_DB_USER"
	EnvDBName     = "TROS_DB_NAME"
	EnvRedisURL   = "TROS_REDIS_URL"
	EnvJWTSecret  = "TROS_JWT_SECRET"
	EnvJWTIssuer  = "TROS_JWT_ISSUER"
	EnvJWTExpMins = "TROS_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
