package board

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/transfer"
)

// RedisClient is the subset of *redis.Client used by RedisBoard.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisConfig configures a connection for DialRedis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key. Defaults to "pathclip:".
	Prefix string
}

// RedisBoard shares boards between machines through Redis. Expiry is left to
// Redis key TTLs.
type RedisBoard struct {
	client RedisClient
	prefix string
}

// NewRedisBoard wraps an existing client.
func NewRedisBoard(client RedisClient, prefix string) *RedisBoard {
	if prefix == "" {
		prefix = "pathclip:"
	}
	return &RedisBoard{client: client, prefix: prefix}
}

// DialRedis connects to the server in cfg and checks it is reachable.
func DialRedis(ctx context.Context, cfg RedisConfig) (*RedisBoard, error) {
	if cfg.Addr == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "redis address cannot be empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", cfg.Addr)
	}
	return NewRedisBoard(client, cfg.Prefix), nil
}

func (b *RedisBoard) key(name string) string {
	return b.prefix + "board:" + name
}

// Put stores p under name with ttl as the key expiry.
func (b *RedisBoard) Put(ctx context.Context, name string, p transfer.Payload, ttl time.Duration) error {
	if err := errors.ValidateBoardName(name); err != nil {
		return err
	}
	data, err := json.Marshal(NewEntry(p, ttl))
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	if err := b.client.Set(ctx, b.key(name), data, ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "write board %s", name)
	}
	return nil
}

// Get returns the content of name.
func (b *RedisBoard) Get(ctx context.Context, name string) (Entry, bool, error) {
	if err := errors.ValidateBoardName(name); err != nil {
		return Entry{}, false, err
	}
	data, err := b.client.Get(ctx, b.key(name)).Bytes()
	if err == redis.Nil {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, errors.Wrap(errors.ErrCodeNetwork, err, "read board %s", name)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode board %s", name)
	}
	if e.Expired(time.Now()) {
		return Entry{}, false, nil
	}
	return e, true, nil
}

// Delete clears name.
func (b *RedisBoard) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateBoardName(name); err != nil {
		return err
	}
	if err := b.client.Del(ctx, b.key(name)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "delete board %s", name)
	}
	return nil
}

// Close closes the client.
func (b *RedisBoard) Close() error {
	return b.client.Close()
}

var _ Board = (*RedisBoard)(nil)
