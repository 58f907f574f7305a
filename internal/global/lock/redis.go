package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "mergington:lock:"

// 只删除自己持有的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis 多实例部署时的分布式锁，SET NX PX 加锁，锁在 ttl 后自动过期
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	log    *slog.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration, log *slog.Logger) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &Redis{
		client: client,
		ttl:    ttl,
		retry:  20 * time.Millisecond,
		log:    log,
	}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	key = keyPrefix + key

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()
	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	return func() {
		// 请求 context 可能已取消，释放锁使用独立的超时
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, r.client, []string{key}, token).Err(); err != nil {
			r.log.Warn("释放分布式锁失败", "key", key, "error", err)
		}
	}, nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
