package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes the Redis client
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}

	if password != "" {
		opts.Password = password
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	return nil
}

// SetClient sets the Redis client (used for testing)
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// LPush prepends a value to a list
func LPush(ctx context.Context, key string, value interface{}) error {
	return client.LPush(ctx, key, value).Err()
}

// BRPop pops the tail of a list, blocking up to timeout
func BRPop(ctx context.Context, timeout time.Duration, key string) ([]string, error) {
	return client.BRPop(ctx, timeout, key).Result()
}

// LLen returns the length of a list
func LLen(ctx context.Context, key string) (int64, error) {
	return client.LLen(ctx, key).Result()
}
