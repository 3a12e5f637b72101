package cache

import (
	"context"
	"strings"
	"time"
)

func revokedSessionKey(tokenID string) string {
	return "session:revoked:" + strings.TrimSpace(tokenID)
}

// RevokeSession 将会话令牌加入吊销列表，过期时间与令牌剩余有效期一致
func RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	if strings.TrimSpace(tokenID) == "" || ttl <= 0 {
		return nil
	}
	return SetFlag(ctx, revokedSessionKey(tokenID), ttl)
}

// IsSessionRevoked 判断会话令牌是否已吊销；未启用 Redis 时恒为 false
func IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	if strings.TrimSpace(tokenID) == "" {
		return false, nil
	}
	return HasFlag(ctx, revokedSessionKey(tokenID))
}
