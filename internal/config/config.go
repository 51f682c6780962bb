package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Storage driver names
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Storage  StorageConfig  `env:",prefix=STORAGE_"`
	Postgres PostgresConfig `env:",prefix=POSTGRES_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	Session  SessionConfig  `env:",prefix=SESSION_"`
	Pricing  PricingConfig  `env:",prefix=PRICING_"`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

// StorageConfig selects the repository backend and controls demo seeding.
// The memory driver keeps all state for the process lifetime only.
type StorageConfig struct {
	Driver       string `env:"DRIVER,default=memory"`
	SeedScooters int    `env:"SEED_SCOOTERS,default=250"`
}

type PostgresConfig struct {
	Host          string `env:"HOST,default=localhost"`
	Port          string `env:"PORT,default=5432"`
	User          string `env:"USER,default=scooter_rental"`
	Password      string `env:"PASSWORD,default=scooter_rental_password"`
	DBName        string `env:"DB,default=scooter_rental_db"`
	SSLMode       string `env:"SSLMODE,default=disable"`
	MigrationsDir string `env:"MIGRATIONS_DIR,default=migrations"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

// SessionConfig controls the signed session cookie riders authenticate with.
type SessionConfig struct {
	Secret     string   `env:"SECRET,required"`
	TTL        Duration `env:"TTL,default=7d"`
	CookieName string   `env:"COOKIE_NAME,default=session"`
}

// PricingConfig holds the fare formula parameters.
// cost = BaseFee + PerMinuteRate * minutes; distance = DistancePerMinute * minutes.
type PricingConfig struct {
	BaseFee           float64 `env:"BASE_FEE,default=1.00"`
	PerMinuteRate     float64 `env:"PER_MINUTE_RATE,default=0.15"`
	DistancePerMinute float64 `env:"DISTANCE_PER_MINUTE,default=0.1"`
}

type SecurityConfig struct {
	BCryptCost        int      `env:"BCRYPT_COST,default=12"`
	CodeTTL           Duration `env:"VERIFICATION_CODE_TTL,default=10m"`
	RateLimitRequests int      `env:"RATE_LIMIT_REQUESTS,default=10"`
	RateLimitWindow   Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// MigrateURL returns the connection URL used by the migration runner
func (p PostgresConfig) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(config.Session.Secret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}

	if config.Storage.Driver != DriverMemory && config.Storage.Driver != DriverPostgres {
		return nil, fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.Storage.SeedScooters < 0 {
		return nil, fmt.Errorf("STORAGE_SEED_SCOOTERS must not be negative")
	}

	return &config, nil
}

// LoadWithDefaults loads configuration with default context
func LoadWithDefaults() (*Config, error) {
	return Load(context.Background())
}
