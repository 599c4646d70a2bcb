package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel  int       `env:"LOG_LEVEL" envDefault:"0"`
	LogFormat string    `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	GRPC      GRPC      `envPrefix:"GRPC_"`
	Database  Database  `envPrefix:"DATABASE_"`
	JWT       JWT       `envPrefix:"JWT_"`
	Storage   Storage   `envPrefix:"MINIO_"`
	Redis     Redis     `envPrefix:"REDIS_"`
	Space     Space     `envPrefix:"SPACE_"`
	Reconcile Reconcile `envPrefix:"RECONCILE_"`
}

// GRPC contains gRPC server parameters.
type GRPC struct {
	Port               string `env:"PORT" envDefault:"50051" validate:"required,numeric"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	// HealthInterval is how often the database is pinged for health checks.
	HealthInterval time.Duration `env:"HEALTH_INTERVAL" envDefault:"15s" validate:"gt=0"`
}

// Database contains database connection parameters.
// An empty DSN runs the server on the in-process store.
type Database struct {
	DSN string `env:"DSN"`
}

// JWT contains token signing parameters.
type JWT struct {
	Secret     string        `env:"SECRET" envDefault:"devsecret" validate:"required"`
	AccessTTL  time.Duration `env:"ACCESS_TTL" envDefault:"15m" validate:"gt=0"`
	RefreshTTL time.Duration `env:"REFRESH_TTL" envDefault:"720h" validate:"gt=0"`
}

// Storage contains object storage parameters for avatars.
// An empty endpoint disables avatar uploads.
type Storage struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"ldr-access-key"`
	SecretKey string `env:"SECRET_KEY" envDefault:"ldr-secret-key"`
	Bucket    string `env:"BUCKET_NAME" envDefault:"ldr-avatars"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
	PublicURL string `env:"PUBLIC_URL"`
}

// Redis contains pub/sub parameters for live queries.
// An empty address keeps fan-out in process.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Space contains space membership policy.
type Space struct {
	InviteCodeLength int    `env:"INVITE_CODE_LENGTH" envDefault:"16" validate:"gte=13,lte=64"`
	InviteBaseURL    string `env:"INVITE_BASE_URL" envDefault:"http://localhost:5173/" validate:"required,url"`
	DissolveOnLeave  bool   `env:"DISSOLVE_ON_LEAVE" envDefault:"false"`
}

// Reconcile contains membership reconciliation parameters.
type Reconcile struct {
	SettleDelay time.Duration `env:"SETTLE_DELAY" envDefault:"2s" validate:"gte=0"`
}

// NewConfig loads configuration from an optional .env file and the environment.
func NewConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
