package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	tokenStoreVar     = "TOKEN_STORE"
	tokenFileVar      = "TOKEN_FILE"
	redisAddrVar      = "REDIS_ADDR"
	redisPasswordVar  = "REDIS_PASSWORD"
	redisDBVar        = "REDIS_DB"
	redisKeyPrefixVar = "REDIS_KEY_PREFIX"
)

const (
	TokenStoreFile  = "file"
	TokenStoreRedis = "redis"
)

type StorageConfig interface {
	GetTokenStore() string
	GetTokenFile() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisKeyPrefix() string
}

type Storage struct {
	v *viper.Viper
}

var _ StorageConfig = Storage{}

// GetTokenStore returns "file" or "redis"; anything else falls back to "file".
func (s Storage) GetTokenStore() string {
	switch strings.ToLower(s.v.GetString(tokenStoreVar)) {
	case TokenStoreRedis:
		return TokenStoreRedis
	default:
		return TokenStoreFile
	}
}

// GetTokenFile defaults to ~/.summarizer/tokens.json.
func (s Storage) GetTokenFile() string {
	if path := s.v.GetString(tokenFileVar); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".summarizer", "tokens.json")
}

func (s Storage) GetRedisAddr() string {
	return s.v.GetString(redisAddrVar)
}

func (s Storage) GetRedisPassword() string {
	return s.v.GetString(redisPasswordVar)
}

func (s Storage) GetRedisDB() int {
	return s.v.GetInt(redisDBVar)
}

func (s Storage) GetRedisKeyPrefix() string {
	return s.v.GetString(redisKeyPrefixVar)
}
