package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisClient is the subset of *redis.Client the Redis store uses.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ RedisClient = (*redis.Client)(nil)

// Redis is a Store backed by Redis. Values are stored as decimal strings without expiry.
type Redis struct {
	cli RedisClient
	log zerolog.Logger
}

var _ Store = (*Redis)(nil)

// NewRedis returns a Store that writes through cli.
func NewRedis(cli RedisClient, log zerolog.Logger) *Redis {
	return &Redis{cli: cli, log: log}
}

// DialRedis connects to addr and verifies the connection with PING.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	cli := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := cli.Ping(ctx).Err(); err != nil {
		cli.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return cli, nil
}

func (c *Redis) Set(ctx context.Context, key string, value float64) error {
	s := strconv.FormatFloat(value, 'g', -1, 64)
	if err := c.cli.Set(ctx, key, s, 0).Err(); err != nil {
		c.log.Debug().Str("key", key).Err(err).Msg("cache set failed")
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *Redis) Get(ctx context.Context, key string) (float64, bool, error) {
	s, err := c.cli.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		c.log.Debug().Str("key", key).Err(err).Msg("cache get failed")
		return 0, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("cache parse value: %w", err)
	}
	return v, true, nil
}

func (c *Redis) Contains(ctx context.Context, key string) (bool, error) {
	n, err := c.cli.Exists(ctx, key).Result()
	if err != nil {
		c.log.Debug().Str("key", key).Err(err).Msg("cache exists failed")
		return false, fmt.Errorf("cache exists %s: %w", key, err)
	}
	return n > 0, nil
}
