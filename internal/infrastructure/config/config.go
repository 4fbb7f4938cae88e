package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	usecasecontract "github.com/classbrand/brandnet/internal/usecase/contract"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config holds application configuration values.
type Config struct {
	Port               string
	AppBaseURL         string
	StoreBackend       string
	MongoURI           string
	MongoDBName        string
	RedisURL           string
	NatsURL            string
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	ToggleMaxAttempts  int
	ToggleBaseBackoff  time.Duration
	ToggleMaxBackoff   time.Duration
	StoreTxTimeout     time.Duration
	RateLimitPerSecond float64
	LogLevel           string
	LogPretty          bool
	GoogleClientID     string
	GoogleClientSecret string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")
	v.SetDefault("STORE_BACKEND", BackendMongo)
	v.SetDefault("MONGODB_DB_NAME", "brandnet")
	v.SetDefault("ACCESS_TOKEN_EXPIRY_MINUTES", 60)
	v.SetDefault("REFRESH_TOKEN_EXPIRY_HOURS", 168) // 7 days
	v.SetDefault("TOGGLE_MAX_ATTEMPTS", 3)
	v.SetDefault("TOGGLE_BASE_BACKOFF_MS", 20)
	v.SetDefault("TOGGLE_MAX_BACKOFF_MS", 500)
	v.SetDefault("STORE_TX_TIMEOUT_SECONDS", 10)
	v.SetDefault("RATE_LIMIT_PER_SECOND", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
}

// Load reads config.yaml (optional) from the working directory or ./config and
// overlays environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	cfg := &Config{
		Port:               v.GetString("PORT"),
		AppBaseURL:         v.GetString("APP_BASE_URL"),
		StoreBackend:       strings.ToLower(v.GetString("STORE_BACKEND")),
		MongoURI:           v.GetString("MONGODB_URI"),
		MongoDBName:        v.GetString("MONGODB_DB_NAME"),
		RedisURL:           v.GetString("REDIS_URL"),
		NatsURL:            v.GetString("NATS_URL"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		AccessTokenExpiry:  time.Minute * time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRY_MINUTES")),
		RefreshTokenExpiry: time.Hour * time.Duration(v.GetInt("REFRESH_TOKEN_EXPIRY_HOURS")),
		ToggleMaxAttempts:  v.GetInt("TOGGLE_MAX_ATTEMPTS"),
		ToggleBaseBackoff:  time.Millisecond * time.Duration(v.GetInt("TOGGLE_BASE_BACKOFF_MS")),
		ToggleMaxBackoff:   time.Millisecond * time.Duration(v.GetInt("TOGGLE_MAX_BACKOFF_MS")),
		StoreTxTimeout:     time.Second * time.Duration(v.GetInt("STORE_TX_TIMEOUT_SECONDS")),
		RateLimitPerSecond: v.GetFloat64("RATE_LIMIT_PER_SECOND"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogPretty:          v.GetBool("LOG_PRETTY"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings required by the selected backend.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI environment variable not set")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want mongo or memory)", c.StoreBackend)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable not set")
	}
	if c.ToggleMaxAttempts < 1 {
		return fmt.Errorf("TOGGLE_MAX_ATTEMPTS must be at least 1, got %d", c.ToggleMaxAttempts)
	}
	return nil
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }

func (c *Config) GetPort() string         { return c.Port }
func (c *Config) GetStoreBackend() string { return c.StoreBackend }
func (c *Config) GetMongoURI() string     { return c.MongoURI }
func (c *Config) GetMongoDBName() string  { return c.MongoDBName }
func (c *Config) GetRedisURL() string     { return c.RedisURL }
func (c *Config) GetNatsURL() string      { return c.NatsURL }
func (c *Config) GetJWTSecret() string    { return c.JWTSecret }

// GetAccessTokenExpiry returns the lifetime of access tokens.
func (c *Config) GetAccessTokenExpiry() time.Duration { return c.AccessTokenExpiry }

// GetRefreshTokenExpiry returns the expiry duration for refresh tokens.
func (c *Config) GetRefreshTokenExpiry() time.Duration { return c.RefreshTokenExpiry }

// GetToggleMaxAttempts returns how many times a conflicting toggle is attempted.
func (c *Config) GetToggleMaxAttempts() int { return c.ToggleMaxAttempts }

func (c *Config) GetToggleBaseBackoff() time.Duration { return c.ToggleBaseBackoff }
func (c *Config) GetToggleMaxBackoff() time.Duration  { return c.ToggleMaxBackoff }

// GetStoreTxTimeout returns the deadline of one store transaction.
func (c *Config) GetStoreTxTimeout() time.Duration { return c.StoreTxTimeout }

func (c *Config) GetRateLimitPerSecond() float64 { return c.RateLimitPerSecond }
func (c *Config) GetLogLevel() string            { return c.LogLevel }
func (c *Config) GetLogPretty() bool             { return c.LogPretty }
func (c *Config) GetGoogleClientID() string      { return c.GoogleClientID }
func (c *Config) GetGoogleClientSecret() string  { return c.GoogleClientSecret }
