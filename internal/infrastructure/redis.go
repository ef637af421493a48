package infrastructure

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis creates the redis client backing the order view cache. The
// cache is best-effort: when redis is unreachable this returns nil and the
// service runs with caching disabled.
func ConnectRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s, order view cache disabled: %v", addr, err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
