package cache

import (
	"context"
	"fmt"
	"time"
)

// identitySnapshotTTL 管理员标识变更后最多延迟该时长生效
const identitySnapshotTTL = 10 * time.Minute

// IdentitySnapshot 会话用户的用户名、管理员标识与令牌版本缓存
type IdentitySnapshot struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	IsAdmin      bool   `json:"is_admin"`
	TokenVersion uint64 `json:"token_version"`
	CachedAt     int64  `json:"cached_at"`
}

func identitySnapshotKey(userID uint) string {
	return fmt.Sprintf("session:user:%d", userID)
}

// NewIdentitySnapshot 以当前时间构建快照
func NewIdentitySnapshot(userID uint, username string, isAdmin bool, tokenVersion uint64) *IdentitySnapshot {
	return &IdentitySnapshot{
		UserID:       userID,
		Username:     username,
		IsAdmin:      isAdmin,
		TokenVersion: tokenVersion,
		CachedAt:     time.Now().Unix(),
	}
}

// LoadIdentitySnapshot 读取快照；未启用 Redis 或未命中时 ok 为 false
func LoadIdentitySnapshot(ctx context.Context, userID uint) (*IdentitySnapshot, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var snapshot IdentitySnapshot
	ok, err := GetJSON(ctx, identitySnapshotKey(userID), &snapshot)
	if err != nil || !ok {
		return nil, false, err
	}
	return &snapshot, true, nil
}

// StoreIdentitySnapshot 写入快照
func StoreIdentitySnapshot(ctx context.Context, snapshot *IdentitySnapshot) error {
	if snapshot == nil || snapshot.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, identitySnapshotKey(snapshot.UserID), snapshot, identitySnapshotTTL)
}

// DropIdentitySnapshot 登出或权限变更时清除快照
func DropIdentitySnapshot(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, identitySnapshotKey(userID))
}
