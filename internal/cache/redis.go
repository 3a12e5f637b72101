package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/devlegal/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "devlegal"
	pingTimeout   = 3 * time.Second
)

// 所有辅助函数在未启用 Redis 时都是空操作，调用方无需判断
var (
	mu          sync.RWMutex
	redisClient *redis.Client
	redisPrefix = defaultPrefix
)

// InitRedis 按配置连接 Redis；未启用时保持禁用状态并返回 nil
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping: %w", err)
	}

	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	mu.Lock()
	redisClient = client
	redisPrefix = prefix
	mu.Unlock()
	return nil
}

// Close 关闭客户端并回到禁用状态
func Close() error {
	mu.Lock()
	client := redisClient
	redisClient = nil
	mu.Unlock()
	if client == nil {
		return nil
	}
	return client.Close()
}

// Enabled 是否已连接 Redis
func Enabled() bool {
	return Client() != nil
}

// Client 当前客户端；未启用时为 nil
func Client() *redis.Client {
	mu.RLock()
	defer mu.RUnlock()
	return redisClient
}

// GetJSON 读取 JSON 值；键不存在时返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	client := Client()
	if client == nil {
		return false, nil
	}
	raw, err := client.Get(ctx, buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON 写入 JSON 值
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	client := Client()
	if client == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, buildKey(key), payload, ttl).Err()
}

// SetFlag 写入带过期时间的标记
func SetFlag(ctx context.Context, key string, ttl time.Duration) error {
	client := Client()
	if client == nil {
		return nil
	}
	return client.Set(ctx, buildKey(key), "1", ttl).Err()
}

// HasFlag 标记是否存在
func HasFlag(ctx context.Context, key string) (bool, error) {
	client := Client()
	if client == nil {
		return false, nil
	}
	n, err := client.Exists(ctx, buildKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Del 删除键
func Del(ctx context.Context, key string) error {
	client := Client()
	if client == nil {
		return nil
	}
	return client.Del(ctx, buildKey(key)).Err()
}

func buildKey(key string) string {
	mu.RLock()
	prefix := redisPrefix
	mu.RUnlock()
	return prefix + ":" + strings.TrimSpace(key)
}
