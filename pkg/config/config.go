package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultJWTSecret is rejected by the API at startup.
const DefaultJWTSecret = "your-secret-key-change-in-production"

const (
	DefaultJWTTTL         = 7 * 24 * time.Hour
	DefaultUploadMaxBytes = 50 << 20
)

type Config struct {
	// Server
	ServerPort  string   `env:"SERVER_PORT" envDefault:"8080"`
	GinMode     string   `env:"GIN_MODE" envDefault:"release"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173"`

	// Database
	DBHost            string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort            string        `env:"DB_PORT" envDefault:"5432"`
	DBUser            string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName            string        `env:"DB_NAME" envDefault:"opftube"`
	DBSSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	AutoMigrate       bool          `env:"AUTO_MIGRATE" envDefault:"true"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// RabbitMQ
	RabbitMQUser     string `env:"RABBITMQ_USER" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQHost     string `env:"RABBITMQ_HOST" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`

	// JWT
	JWTSecret string        `env:"JWT_SECRET" envDefault:"your-secret-key-change-in-production"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"168h"`

	// AWS S3 / MinIO
	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	AWSEndpoint        string `env:"AWS_ENDPOINT"`
	S3UseSSL           string `env:"S3_USE_SSL" envDefault:"true"`
	S3BucketName       string `env:"S3_BUCKET_NAME" envDefault:"opftube-media"`
	UploadMaxBytes     int64  `env:"UPLOAD_MAX_BYTES" envDefault:"52428800"`

	// Admin bootstrap, disabled unless both are set
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"`

	// Rate limiting
	RateLimit       int           `env:"RATE_LIMIT" envDefault:"300"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills settings that were present in the environment but
// empty. env only uses envDefault for unset variables.
func (c *Config) applyDefaults() {
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if len(c.CORSOrigins) == 0 || (len(c.CORSOrigins) == 1 && c.CORSOrigins[0] == "") {
		c.CORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"}
	}
	if c.DBMaxOpenConns <= 0 {
		c.DBMaxOpenConns = 25
	}
	if c.DBMaxIdleConns <= 0 {
		c.DBMaxIdleConns = 10
	}
	if c.DBConnMaxLifetime <= 0 {
		c.DBConnMaxLifetime = 5 * time.Minute
	}
	if c.JWTTTL <= 0 {
		c.JWTTTL = DefaultJWTTTL
	}
	if c.UploadMaxBytes <= 0 {
		c.UploadMaxBytes = DefaultUploadMaxBytes
	}
	if c.RateLimit <= 0 {
		c.RateLimit = 300
	}
	if c.RateLimitWindow <= 0 {
		c.RateLimitWindow = time.Minute
	}
}

// PostgresDSN builds the connection string used by both gorm and goose.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost,
		c.DBUser,
		c.DBPassword,
		c.DBName,
		c.DBPort,
		c.DBSSLMode,
	)
}

func (c *Config) AdminBootstrapEnabled() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}
