package confs

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Host     string `envconfig:"HOST" default:"0.0.0.0"`
	Port     int    `envconfig:"PORT" default:"3000"`

	// Either DBURL or the individual DB_* parameters must be set.
	DBURL      string `envconfig:"DB_URL"`
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     string `envconfig:"DB_PORT"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`

	TokenKey   string        `envconfig:"TOKEN_KEY" required:"true"`
	TokenTTL   time.Duration `envconfig:"TOKEN_TTL" default:"2h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	WSRequireToken    bool          `envconfig:"WS_REQUIRE_TOKEN" default:"false"`
	WSMaxMessageBytes int64         `envconfig:"WS_MAX_MESSAGE_BYTES" default:"65536"`
	WSPingInterval    time.Duration `envconfig:"WS_PING_INTERVAL" default:"30s"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// LoadConfig loads environment variables from a .env file if present
// and parses them into a Config.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.TokenKey == "" {
		return nil, fmt.Errorf("TOKEN_KEY must not be empty")
	}
	if cfg.WSMaxMessageBytes <= 0 {
		return nil, fmt.Errorf("WS_MAX_MESSAGE_BYTES must be positive, got %d", cfg.WSMaxMessageBytes)
	}
	return &cfg, nil
}
