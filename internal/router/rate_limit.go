package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/devlegal/internal/http/response"
	"github.com/devlegal/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const defaultRateLimitMessage = "Too many requests, please try again in %d seconds"

// RateLimitKeyFunc 从请求中提取限流维度
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则；MaxRequests <= 0 表示关闭
// Message 中的 %d 会替换为剩余等待秒数
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	Message       string
}

func (r RateLimitRule) active() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) key(raw string) string {
	if r.Prefix == "" {
		return raw
	}
	return r.Prefix + ":" + raw
}

func (r RateLimitRule) deniedMessage(wait int) string {
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		msg = defaultRateLimitMessage
	}
	return fmt.Sprintf(msg, wait)
}

// 计数与过期在同一脚本内完成，避免 INCR 后进程退出留下永不过期的 key
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("TTL", KEYS[1])}
`)

// windowHit 一次计数后的窗口状态
type windowHit struct {
	count int64
	ttl   int64
}

func hitWindow(ctx context.Context, client *redis.Client, key string, windowSeconds int) (windowHit, error) {
	result, err := fixedWindowScript.Run(ctx, client, []string{key}, windowSeconds).Result()
	if err != nil {
		return windowHit{}, err
	}
	return parseWindowResult(result)
}

func parseWindowResult(result interface{}) (windowHit, error) {
	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return windowHit{}, fmt.Errorf("unexpected rate limit reply: %v", result)
	}
	count, ok := toInt64(values[0])
	if !ok {
		return windowHit{}, fmt.Errorf("unexpected rate limit count: %v", values[0])
	}
	ttl, _ := toInt64(values[1])
	return windowHit{count: count, ttl: ttl}, nil
}

// RateLimitMiddleware Redis 固定窗口限流
// 未启用 Redis 或 Redis 出错时放行，登录不因缓存故障而不可用
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.active() {
			c.Next()
			return
		}

		raw := ""
		if keyFunc != nil {
			raw = strings.TrimSpace(keyFunc(c))
		}
		if raw == "" {
			raw = c.ClientIP()
		}
		key := rule.key(raw)

		hit, err := hitWindow(c.Request.Context(), client, key, rule.WindowSeconds)
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "key", key, "error", err)
			c.Next()
			return
		}
		if hit.count <= int64(rule.MaxRequests) {
			c.Next()
			return
		}

		wait := int(hit.ttl)
		if wait < 1 {
			wait = rule.WindowSeconds
		}
		logger.Warnw("rate_limited", "key", key, "count", hit.count, "retry_after", wait)
		c.Header("Retry-After", strconv.Itoa(wait))
		response.Abort(c, response.CodeTooManyRequests, rule.deniedMessage(wait))
	}
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndField 按请求字段（JSON 或表单，忽略大小写）与 IP 组合限流
func KeyByIPAndField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(readRequestField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// readRequestField 读取字段后恢复请求体，后续绑定不受影响
func readRequestField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	if !strings.HasPrefix(c.ContentType(), "application/json") {
		return strings.TrimSpace(c.PostForm(field))
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
