package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/go-summary-client/token"
	"github.com/redis/go-redis/v9"
)

var _ token.Repo = (*Store)(nil)

const (
	accessTokenKey  = "accessToken"
	refreshTokenKey = "refreshToken"
)

// Store keeps the two token slots as separate redis keys under a shared prefix.
type Store struct {
	client redis.Cmdable
	prefix string
}

// New returns a store keeping the two tokens under keys prefixed with prefix.
func New(client redis.Cmdable, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// NewClient returns a redis client that has answered a ping.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (s *Store) key(slot string) string {
	if s.prefix == "" {
		return slot
	}
	return s.prefix + ":" + slot
}

// Load reads both keys. Missing keys load as empty strings.
func (s *Store) Load(ctx context.Context) (token.Record, error) {
	values, err := s.client.MGet(ctx, s.key(accessTokenKey), s.key(refreshTokenKey)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return token.Record{}, fmt.Errorf("load tokens: %w", err)
	}

	var record token.Record
	if len(values) == 2 {
		record.AccessToken, _ = values[0].(string)
		record.RefreshToken, _ = values[1].(string)
	}
	return record, nil
}

func (s *Store) Save(ctx context.Context, record token.Record) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(accessTokenKey), record.AccessToken, 0)
		pipe.Set(ctx, s.key(refreshTokenKey), record.RefreshToken, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(accessTokenKey), s.key(refreshTokenKey)).Err(); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}
