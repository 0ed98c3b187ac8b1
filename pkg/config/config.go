package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
	Import        ImportConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TROS_APP_ENV" required:"true"`
	Port         string `envconfig:"TROS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TROS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TROS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TROS_DB_DSN"`
	Driver string `envconfig:"TROS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TROS_DB_HOST"`
	LegacyPort     int    `envconfig:"TROS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TROS_DB_USER"`
	LegacyPassword string `envconfig:"TROS_DB_PASSWORD"`
	LegacyName     string `envconfig:"TROS_DB_NAME"`
	LegacySSLMode  string `envconfig:"TROS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TROS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TROS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TROS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TROS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TROS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TROS_REDIS_ADDR"`
	Password     string        `envconfig:"TROS_REDIS_PASSWORD"`
	DB           int           `envconfig:"TROS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TROS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TROS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TROS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TROS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TROS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"TROS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"TROS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"TROS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"TROS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TROS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TROS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TROS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TROS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen     int `envconfig:"TROS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"TROS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"TROS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"TROS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"TROS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"TROS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"TROS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TROS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TROS_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"TROS_CORS_ALLOWED_ORIGINS" default:"*"`
}

type ImportConfig struct {
	BatchSize int `envconfig:"TROS_IMPORT_BATCH_SIZE" default:"500"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"TROS_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"TROS_GCP_CREDENTIALS_JSON"`
}

// PubSubConfig names the optional topic mirroring activity log entries.
type PubSubConfig struct {
	ActivityTopic string `envconfig:"TROS_PUBSUB_ACTIVITY_TOPIC"`
}

func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.ActivityTopic) != ""
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
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
