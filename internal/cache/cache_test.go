package cache

import (
	"context"
	"testing"
	"time"

	"github.com/devlegal/internal/config"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}

	ctx := context.Background()
	if err := StoreIdentitySnapshot(ctx, NewIdentitySnapshot(7, "admin", true, 0)); err != nil {
		t.Fatalf("store snapshot should be noop: %v", err)
	}
	got, ok, err := LoadIdentitySnapshot(ctx, 7)
	if err != nil || ok || got != nil {
		t.Fatalf("disabled cache must miss: %+v %v %v", got, ok, err)
	}
	if err := DropIdentitySnapshot(ctx, 7); err != nil {
		t.Fatalf("drop snapshot should be noop: %v", err)
	}

	if err := RevokeSession(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("revoke should be noop: %v", err)
	}
	revoked, err := IsSessionRevoked(ctx, "jti-1")
	if err != nil || revoked {
		t.Fatalf("disabled cache never reports revocation: %v %v", revoked, err)
	}
}

func TestNewIdentitySnapshot(t *testing.T) {
	before := time.Now().Unix()
	snapshot := NewIdentitySnapshot(3, "editor", false, 2)
	if snapshot.UserID != 3 || snapshot.Username != "editor" || snapshot.IsAdmin || snapshot.TokenVersion != 2 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if snapshot.CachedAt < before {
		t.Fatalf("cached_at should be set to now")
	}
	if err := StoreIdentitySnapshot(context.Background(), &IdentitySnapshot{}); err != nil {
		t.Fatalf("snapshot without user id should be ignored: %v", err)
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	old := redisPrefix
	t.Cleanup(func() { redisPrefix = old })
	redisPrefix = "devlegal"

	if got := buildKey(revokedSessionKey("abc")); got != "devlegal:session:revoked:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := buildKey(identitySnapshotKey(5)); got != "devlegal:session:user:5" {
		t.Fatalf("unexpected key: %s", got)
	}
}
