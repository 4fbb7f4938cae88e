package usecasecontract

import "time"

// IConfigProvider exposes application configuration values.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetPort() string
	GetStoreBackend() string
	GetMongoURI() string
	GetMongoDBName() string
	GetRedisURL() string
	GetNatsURL() string
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetToggleMaxAttempts() int
	GetToggleBaseBackoff() time.Duration
	GetToggleMaxBackoff() time.Duration
	GetStoreTxTimeout() time.Duration
	GetRateLimitPerSecond() float64
	GetLogLevel() string
	GetLogPretty() bool
	GetGoogleClientID() string
	GetGoogleClientSecret() string
}
