package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	apiBaseURLVar        = "API_BASE_URL"
	apiTimeoutVar        = "API_TIMEOUT"
	jwtSecretVar         = "JWT_SECRET"
	accessTokenExpiryVar = "ACCESS_TOKEN_EXPIRY"
	refreshExpiryVar     = "REFRESH_TOKEN_EXPIRY"
)

type GatewayConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

type Gateway struct {
	v *viper.Viper
}

var _ GatewayConfig = Gateway{}

// GetAPIBaseURL is the root every API path (auth/token/, generate-summary/...) is joined to.
func (g Gateway) GetAPIBaseURL() string {
	return g.v.GetString(apiBaseURLVar)
}

func (g Gateway) GetAPITimeout() time.Duration {
	return parseDuration(g.v.GetString(apiTimeoutVar), 30*time.Second)
}

// GetJWTSecret is only used by the dev gateway to sign access tokens.
func (g Gateway) GetJWTSecret() string {
	return g.v.GetString(jwtSecretVar)
}

func (g Gateway) GetAccessTokenExpiry() time.Duration {
	return parseDuration(g.v.GetString(accessTokenExpiryVar), 5*time.Minute)
}

func (g Gateway) GetRefreshTokenExpiry() time.Duration {
	return parseDuration(g.v.GetString(refreshExpiryVar), 24*time.Hour)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
