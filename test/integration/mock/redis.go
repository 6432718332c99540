package mock

import (
	"context"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisServer *miniredis.Miniredis
var redisConn *redis.Client

// NewRedis starts a shared miniredis server and returns a client connected to it.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisConn = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})

	return redisConn
}

// ClearRedis drops every key.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}

// KeysMatching lists the keys stored under a glob pattern.
func KeysMatching(client *redis.Client, pattern string) ([]string, error) {
	return client.Keys(context.TODO(), pattern).Result()
}

// FastForward moves the miniredis clock so TTLs expire.
func FastForward(d time.Duration) {
	if redisServer != nil {
		redisServer.FastForward(d)
	}
}
