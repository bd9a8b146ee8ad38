package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config interface {
	EnvConfig
	GatewayConfig
	StorageConfig
	LogConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetPort() string
}

type mainConfig struct {
	EnvVars
	Gateway
	Storage
	Logging
}

// New loads an optional .env file, then reads every setting from the environment.
func New() Config {
	_ = godotenv.Load()
	return FromViper(newViper())
}

// FromViper builds a Config around an already prepared viper instance.
func FromViper(v *viper.Viper) Config {
	return mainConfig{
		EnvVars: EnvVars{v: v},
		Gateway: Gateway{v: v},
		Storage: Storage{v: v},
		Logging: Logging{v: v},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(envVar, envDevelopment)
	v.SetDefault(appNameVar, "Summarizer")
	v.SetDefault(portVar, "8000")

	v.SetDefault(apiBaseURLVar, "http://localhost:8000/")
	v.SetDefault(apiTimeoutVar, "30s")
	v.SetDefault(jwtSecretVar, "dev_secret")
	v.SetDefault(accessTokenExpiryVar, "5m")
	v.SetDefault(refreshExpiryVar, "24h")

	v.SetDefault(tokenStoreVar, TokenStoreFile)
	v.SetDefault(tokenFileVar, "")
	v.SetDefault(redisAddrVar, "localhost:6379")
	v.SetDefault(redisPasswordVar, "")
	v.SetDefault(redisDBVar, 0)
	v.SetDefault(redisKeyPrefixVar, "summarizer")

	v.SetDefault(logLevelVar, "info")
	v.SetDefault(logFormatVar, LogFormatConsole)
}
